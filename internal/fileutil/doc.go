// Package fileutil provides the recursive directory walk that feeds the
// aggregation pass.
//
// The walker is error-tolerant: failures to access individual entries are
// collected in WalkResult.Errors and the walk continues, so a single
// unreadable subtree never aborts a run. Only an inaccessible root is fatal.
//
// Directory pruning happens before descent. A directory whose name appears in
// WalkOptions.IgnoreDirs is skipped entirely, so nothing beneath it is ever
// visited. File names listed in WalkOptions.SkipNames (the output file and
// its lock file) are skipped wherever they appear in the tree.
//
// Results come back in deterministic depth-first order, lexical within each
// directory (the filepath.WalkDir guarantee), making aggregation output
// stable across runs.
package fileutil
