package pathutil

import (
	"path/filepath"
)

// Resolve returns the absolute path with symlinks evaluated. A path that does
// not exist yet resolves to its absolute form.
func Resolve(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(absPath); err == nil {
		return resolved, nil
	}
	return absPath, nil
}

// SamePath reports whether two paths refer to the same location.
func SamePath(path1, path2 string) bool {
	r1, err := Resolve(path1)
	if err != nil {
		return false
	}
	r2, err := Resolve(path2)
	if err != nil {
		return false
	}
	return r1 == r2
}
