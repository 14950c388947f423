package fileutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// WalkOptions configures the recursive directory walk
type WalkOptions struct {
	// IgnoreDirs is a list of directory names to prune (e.g., ".git", "node_modules").
	// Pruned directories are never descended into.
	IgnoreDirs []string
	// SkipNames is a list of file names to skip wherever they appear
	// (e.g., the aggregation output file itself)
	SkipNames []string
}

// WalkError records a non-fatal failure to access a single entry during the walk
type WalkError struct {
	// Path is the entry that could not be accessed
	Path string
	// Err is the underlying filesystem error
	Err error
}

func (e *WalkError) Error() string {
	return fmt.Sprintf("error accessing %s: %v", e.Path, e.Err)
}

func (e *WalkError) Unwrap() error {
	return e.Err
}

// WalkResult contains the results of a directory walk
type WalkResult struct {
	// Files contains the absolute paths of all visited files, in walk order
	// (depth-first, lexical within each directory)
	Files []string
	// Errors contains any non-fatal errors encountered while walking
	Errors []*WalkError
}

// WalkFiles walks the tree rooted at dir top-down and collects every regular
// file that is not skipped by name and does not live under a pruned directory.
// Errors accessing individual entries are collected and the walk continues;
// only a root that cannot be accessed at all fails the call.
func WalkFiles(dir string, opts WalkOptions) (*WalkResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	result := &WalkResult{
		Files:  make([]string, 0),
		Errors: make([]*WalkError, 0),
	}

	ignoreMap := make(map[string]bool)
	for _, name := range opts.IgnoreDirs {
		ignoreMap[name] = true
	}
	skipMap := make(map[string]bool)
	for _, name := range opts.SkipNames {
		skipMap[name] = true
	}

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				// Root itself is unwalkable
				return err
			}
			result.Errors = append(result.Errors, &WalkError{Path: path, Err: err})
			return nil // Continue walking
		}

		// Skip the root directory itself
		if path == dir {
			return nil
		}

		if d.IsDir() {
			// Prune ignored directories so the walk never enters them
			if ignoreMap[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if skipMap[d.Name()] {
			return nil
		}

		absPath, err := filepath.Abs(path)
		if err != nil {
			result.Errors = append(result.Errors, &WalkError{Path: path, Err: err})
			return nil
		}

		result.Files = append(result.Files, absPath)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	return result, nil
}
