package engine

import (
	"github.com/bianoble/folderchronicle/internal/scan"
)

// NoFilesMessage is the only log line of a run with no candidate files.
const NoFilesMessage = "No files found."

// SortOptions configures one sort run. BaseDir must be an existing
// directory; callers validate it before invoking the engine.
type SortOptions struct {
	BaseDir         string
	IncludeSubdirs  bool
	UseCreationTime bool
	CopyNoBackup    bool
}

// Action returns the verb used in log lines for this configuration.
func (o SortOptions) Action() string {
	if o.CopyNoBackup {
		return "Copied"
	}
	return "Moved"
}

// Status is the overall outcome of a run.
type Status string

const (
	StatusCompleted   Status = "completed"
	StatusNothingToDo Status = "nothing_to_do"
	StatusScanFailed  Status = "scan_failed"
	StatusCanceled    Status = "canceled"
)

// Phase names the stage of a run an event or error belongs to.
type Phase string

const (
	PhaseBackup   Phase = "backup"
	PhaseRelocate Phase = "relocate"
)

// Event is delivered to SortEngine.Progress after every backup copy and
// every relocation attempt. Index is 1-based within the phase.
type Event struct {
	Phase       Phase
	Index       int
	Total       int
	Source      string
	Destination string
	Err         error
}

// FileResult records what happened to one candidate file.
type FileResult struct {
	Source      string
	Destination string // empty if no destination was computed
	Year        string
	Month       string
	Err         error
}

// RunResult holds the outcome of a sort run.
type RunResult struct {
	RunID  string
	Status Status
	Action string // "Moved" or "Copied"

	// Succeeded counts relocated files. Failed counts backup and relocation
	// failures together.
	Succeeded int
	Failed    int

	// Log holds backup lines first, then relocation lines in scan order.
	Log []string

	BackupDir string // empty when no backup was taken
	Files     []FileResult
	Skipped   []scan.SkippedDir
}

// PlannedFile is one entry of a dry-run plan.
type PlannedFile struct {
	Source      string
	Destination string
	Year        string
	Month       string
	Size        int64
	Err         error
}

// Plan describes what a run would do without touching the filesystem.
type Plan struct {
	Options   SortOptions
	BackupDir string // empty when the run would take no backup
	Files     []PlannedFile
	Skipped   []scan.SkippedDir
}
