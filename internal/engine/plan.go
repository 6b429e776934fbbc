package engine

import (
	"context"
	"os"

	"github.com/bianoble/folderchronicle/internal/backup"
	"github.com/bianoble/folderchronicle/internal/naming"
	"github.com/bianoble/folderchronicle/internal/scan"
)

// Plan scans like Run and computes every destination, but creates, copies
// and moves nothing. Destinations are unique against the disk and against
// each other.
func (e *SortEngine) Plan(ctx context.Context, opts SortOptions) (*Plan, error) {
	scanned, err := scan.Files(opts.BaseDir, opts.IncludeSubdirs)
	if err != nil {
		return nil, err
	}

	p := &Plan{Options: opts, Skipped: scanned.Skipped}
	if !opts.CopyNoBackup && len(scanned.Files) > 0 {
		p.BackupDir = backup.Dir(opts.BaseDir, e.now())
	}

	claims := naming.NewReservations()
	for _, src := range scanned.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pf := PlannedFile{Source: src}
		if info, statErr := os.Stat(src); statErr == nil {
			pf.Size = info.Size()
		}
		dst, year, month, err := e.target(opts, src)
		if err != nil {
			pf.Err = &FileError{Phase: PhaseRelocate, Path: src, Err: err}
		} else {
			pf.Year, pf.Month = year, month
			pf.Destination = claims.Claim(dst)
		}
		p.Files = append(p.Files, pf)
	}
	return p, nil
}
