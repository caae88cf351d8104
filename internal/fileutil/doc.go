// Package fileutil discovers documentation files.
//
// ScanDirectory walks a directory tree and returns the absolute paths of the
// files that match ScanOptions, sorted so every run visits documents in the
// same order:
//
//	result, err := fileutil.ScanDirectory("docs", fileutil.ScanOptions{
//	    Extensions:   []string{".md"},
//	    Recursive:    true,
//	    ExcludeDirs:  []string{"node_modules"},
//	    ExcludeGlobs: []string{"drafts/**"},
//	})
//
// Directories starting with "." are always skipped. Exclude globs use
// doublestar syntax and are matched against slash-separated paths relative to
// the scanned directory; a matching directory is pruned with everything below
// it.
//
// Errors that affect a single entry (for example permission denied on a
// subdirectory) are collected in ScanResult.Errors and the walk continues.
// Only a missing root or an invalid exclude pattern fails the scan. Callers
// decide whether collected errors are fatal.
package fileutil
