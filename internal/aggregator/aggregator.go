// Package aggregator implements the single-pass directory aggregation:
// walk a tree, concatenate every file's text into one output file, and
// separate each file with a banner naming its relative path.
package aggregator

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/maegy2011/nota/internal/filelock"
	"github.com/maegy2011/nota/internal/fileutil"
)

// DefaultOutputName is the output filename used when Options.OutputName is empty.
const DefaultOutputName = "combined_text.txt"

// lockSuffix is appended to the output name to form the concurrent-run guard file.
const lockSuffix = ".lock"

// separator is the banner line written above and below each block label.
var separator = strings.Repeat("=", 60)

// DefaultIgnoreDirs lists the directory names pruned from traversal:
// version-control metadata, dependency caches, and virtual environments.
var DefaultIgnoreDirs = []string{".git", "__pycache__", "node_modules", ".idea", "venv"}

// Logger receives progress events during a run. All methods are
// observational only; calls arrive sequentially from the single
// aggregation goroutine.
type Logger interface {
	// LogStart is called once, after the output file is created and before
	// any block is written
	LogStart(root, outputName string)
	// LogFileAdded is called after a file's block is written to the output
	LogFileAdded(relPath string)
	// LogFileSkipped is called when a file is skipped due to a read error
	LogFileSkipped(relPath string, err error)
	// LogSummary is called once after the run completes
	LogSummary(result Result)
}

// noopLogger discards all progress events. Used when Options.Logger is nil.
type noopLogger struct{}

func (noopLogger) LogStart(root, outputName string)         {}
func (noopLogger) LogFileAdded(relPath string)              {}
func (noopLogger) LogFileSkipped(relPath string, err error) {}
func (noopLogger) LogSummary(result Result)                 {}

// Options configures a Combine run.
type Options struct {
	// Root is the directory to aggregate. Empty means the current working directory.
	Root string
	// OutputName is the name of the output file created inside Root.
	// Empty means DefaultOutputName.
	OutputName string
	// Logger receives progress events. Nil disables reporting.
	Logger Logger
}

// Combine walks the tree rooted at opts.Root and writes one labeled block per
// file into opts.OutputName inside the root, overwriting any prior content.
//
// Failures reading an individual file are recovered: the file is skipped, a
// skip notice is reported, and the run continues. Failures resolving or
// walking the root, creating the output file, or writing to the output
// stream are fatal and returned.
func Combine(opts Options) (*Result, error) {
	start := time.Now()

	log := opts.Logger
	if log == nil {
		log = noopLogger{}
	}

	root := opts.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		root = wd
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root directory: %w", err)
	}

	outputName := opts.OutputName
	if outputName == "" {
		outputName = DefaultOutputName
	}
	outputPath := filepath.Join(absRoot, outputName)
	lockName := outputName + lockSuffix

	walked, err := fileutil.WalkFiles(absRoot, fileutil.WalkOptions{
		IgnoreDirs: DefaultIgnoreDirs,
		SkipNames:  []string{outputName, lockName},
	})
	if err != nil {
		return nil, err
	}

	// Guard against a second run interleaving writes into the same output
	lock := filelock.NewFileLock(filepath.Join(absRoot, lockName))
	acquired, err := lock.TryLock()
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, fmt.Errorf("another run is already writing %s", outputPath)
	}
	defer func() {
		lock.Unlock()
		os.Remove(filepath.Join(absRoot, lockName))
	}()

	out, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", outputPath, err)
	}
	defer out.Close()

	log.LogStart(absRoot, outputName)

	result := &Result{
		Root:       absRoot,
		OutputPath: outputPath,
	}

	// Entries the walker could not access are reported as skips
	for _, werr := range walked.Errors {
		rel := relLabel(absRoot, werr.Path)
		result.Skipped = append(result.Skipped, SkippedFile{Path: rel, Err: werr.Err})
		log.LogFileSkipped(rel, werr.Err)
	}

	for _, path := range walked.Files {
		rel := relLabel(absRoot, path)

		data, err := os.ReadFile(path)
		if err != nil {
			// Recoverable: skip this file, keep going
			result.Skipped = append(result.Skipped, SkippedFile{Path: rel, Err: err})
			log.LogFileSkipped(rel, err)
			continue
		}

		// Output-stream failures are fatal, never folded into the per-file skip path
		if err := writeBlock(out, rel, sanitizeUTF8(data)); err != nil {
			return nil, fmt.Errorf("failed to write output file %s: %w", outputPath, err)
		}

		result.Added = append(result.Added, rel)
		log.LogFileAdded(rel)
	}

	result.Duration = time.Since(start)
	log.LogSummary(*result)

	return result, nil
}

// relLabel returns path relative to root in forward-slash form, falling back
// to the input path when it cannot be made relative.
func relLabel(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// writeBlock writes one labeled block: banner, label line, banner, content,
// and a trailing blank line. The block is assembled in memory and written
// with a single call; a failed write never leaves a torn header behind.
func writeBlock(w io.Writer, relPath, content string) error {
	var b strings.Builder
	b.WriteString(separator)
	b.WriteByte('\n')
	b.WriteString("File: ")
	b.WriteString(relPath)
	b.WriteByte('\n')
	b.WriteString(separator)
	b.WriteByte('\n')
	b.WriteString(content)
	b.WriteString("\n\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// sanitizeUTF8 decodes data as UTF-8, replacing any invalid byte sequences
// with the Unicode replacement character. It never fails: undecodable input
// still yields a usable string.
func sanitizeUTF8(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), string(utf8.RuneError))
}
