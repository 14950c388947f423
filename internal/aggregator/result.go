package aggregator

import "time"

// SkippedFile records a single file that was skipped during a run, with the
// error that caused the skip. All skip causes collapse into the same outcome
// (skip and continue); the error is kept for reporting only.
type SkippedFile struct {
	// Path is the file's path relative to the root, forward-slash form
	Path string
	// Err is the underlying failure (permission, I/O, ...)
	Err error
}

// Result summarizes a completed aggregation run.
type Result struct {
	// Root is the absolute path of the aggregated directory
	Root string
	// OutputPath is the absolute path of the output file that was written
	OutputPath string
	// Added lists the relative paths written to the output, in output order
	Added []string
	// Skipped lists files that could not be read and were left out
	Skipped []SkippedFile
	// Duration is the wall-clock time of the run
	Duration time.Duration
}
