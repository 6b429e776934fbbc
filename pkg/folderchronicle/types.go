package folderchronicle

import "github.com/bianoble/folderchronicle/internal/engine"

// Type aliases re-export engine types as the public API.
// Users import "github.com/bianoble/folderchronicle/pkg/folderchronicle" and use
// folderchronicle.RunResult, folderchronicle.Event, etc.

type SortOptions = engine.SortOptions
type RunResult = engine.RunResult
type FileResult = engine.FileResult
type Event = engine.Event
type Phase = engine.Phase
type Status = engine.Status
type Plan = engine.Plan
type PlannedFile = engine.PlannedFile
type FileError = engine.FileError

const (
	PhaseBackup   = engine.PhaseBackup
	PhaseRelocate = engine.PhaseRelocate

	StatusCompleted   = engine.StatusCompleted
	StatusNothingToDo = engine.StatusNothingToDo
	StatusScanFailed  = engine.StatusScanFailed
	StatusCanceled    = engine.StatusCanceled
)

// Kind returns the error kind label used in log lines, e.g. "PermissionError".
func Kind(err error) string { return engine.Kind(err) }

// Describe renders err as "<Kind>: <message>", the form used in log lines.
func Describe(err error) string { return engine.Describe(err) }
