package browse

import (
	"path/filepath"
	"runtime"
	"strings"
)

// DrivesParent is the sentinel parent of a drive root. The UI interprets it
// as "show the list of all roots".
const DrivesParent = "drives:"

// Resolver classifies and normalizes filesystem paths. Drive-letter
// semantics apply only on Windows; elsewhere root classification never
// matches and parents come straight from the OS path rules.
type Resolver struct {
	driveLetters bool
}

// NewResolver returns a resolver with the running platform's semantics.
func NewResolver() *Resolver {
	return &Resolver{driveLetters: runtime.GOOS == "windows"}
}

// newResolverFor pins drive semantics explicitly. Tests use it to exercise
// the Windows rules on any platform.
func newResolverFor(driveLetters bool) *Resolver {
	return &Resolver{driveLetters: driveLetters}
}

// IsRoot reports whether the path denotes a drive root ("C:" or "C:\",
// either separator, any case).
func (r *Resolver) IsRoot(path string) bool {
	return r.driveLetters && isDrivePattern(normalizeSeparators(path))
}

// Normalize returns the path with platform separators. Drive roots come
// back in the canonical upper-case "C:\" form; other paths keep their case.
func (r *Resolver) Normalize(path string) string {
	if !r.driveLetters {
		return path
	}
	p := normalizeSeparators(path)
	if isDrivePattern(p) {
		return canonicalRoot(p)
	}
	return p
}

// ParentOf returns the parent directory of path. The parent of a drive
// root is the DrivesParent sentinel; a parent that is itself a root comes
// back canonicalized.
func (r *Resolver) ParentOf(path string) string {
	if !r.driveLetters {
		return filepath.Dir(path)
	}

	p := normalizeSeparators(path)
	if isDrivePattern(p) {
		return DrivesParent
	}

	p = strings.TrimRight(p, `\`)
	idx := strings.LastIndexByte(p, '\\')
	if idx < 0 {
		return DrivesParent
	}
	parent := p[:idx]
	if isDrivePattern(parent) {
		return canonicalRoot(parent)
	}
	return parent
}

// normalizeSeparators rewrites forward slashes to backslashes.
func normalizeSeparators(path string) string {
	return strings.ReplaceAll(path, "/", `\`)
}

// isDrivePattern matches "X:" and "X:\" for a single ASCII letter X.
func isDrivePattern(path string) bool {
	if len(path) != 2 && len(path) != 3 {
		return false
	}
	c := path[0]
	if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
		return false
	}
	if path[1] != ':' {
		return false
	}
	return len(path) == 2 || path[2] == '\\'
}

// canonicalRoot renders a drive pattern as "X:\" upper-cased.
func canonicalRoot(path string) string {
	return strings.ToUpper(path[:1]) + `:\`
}
