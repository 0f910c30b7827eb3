package config

import (
	"os"
	"path/filepath"
)

// Paths carries the two directories default file locations resolve
// against, instead of leaving them ambient process state.
type Paths struct {
	// BaseDir is the directory of the running executable; default input
	// files are looked up next to the binary.
	BaseDir string

	// WorkDir is the current working directory; explicit relative paths
	// resolve against it.
	WorkDir string
}

// DetectPaths determines the executable and working directories.
func DetectPaths() Paths {
	base := "."
	if exe, err := os.Executable(); err == nil {
		base = filepath.Dir(exe)
	}
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return Paths{BaseDir: base, WorkDir: wd}
}

// Resolve turns a user-supplied path into an absolute one. An explicit
// path is used as given (absolute) or relative to the working directory;
// an empty path falls back to defaultName inside BaseDir.
func (p Paths) Resolve(path, defaultName string) string {
	if path != "" {
		if filepath.IsAbs(path) {
			return path
		}
		return filepath.Join(p.WorkDir, path)
	}
	return filepath.Join(p.BaseDir, defaultName)
}
