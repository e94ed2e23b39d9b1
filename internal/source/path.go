package source

import (
	"os"
	"path/filepath"
	"strings"
)

// normalizePath приводит путь к единому виду в кроссплатформенных дифах.
func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// AbsolutePath resolves p against the current working directory.
func AbsolutePath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return normalizePath(abs), nil
}

// RelativePath renders target relative to baseDir. Paths that would escape
// the base fall back to the absolute form, so output never starts with
// a chain of "..".
func RelativePath(target, baseDir string) (string, error) {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return normalizePath(absTarget), nil
	}
	return normalizePath(rel), nil
}

// BaseName returns the final element of the path.
func BaseName(p string) string {
	return filepath.Base(p)
}

// RelativeToCwd renders p relative to the current working directory when p
// lives under it; otherwise p comes back normalized. Warning output uses
// this so the printed location stays short and clickable.
func RelativeToCwd(p string) string {
	wd, err := os.Getwd()
	if err != nil {
		return normalizePath(p)
	}
	rel, err := RelativePath(p, wd)
	if err != nil {
		return normalizePath(p)
	}
	return rel
}
