package browse

import "testing"

func TestResolverIsRoot(t *testing.T) {
	r := newResolverFor(true)

	roots := []string{`C:`, `C:\`, `c:`, `c:\`, `C:/`, `z:`}
	for _, p := range roots {
		if !r.IsRoot(p) {
			t.Errorf("IsRoot(%q) = false, want true", p)
		}
	}

	nonRoots := []string{``, `C`, `C:\Users`, `C:/Users`, `CD:`, `1:`, `\`, `/home`}
	for _, p := range nonRoots {
		if r.IsRoot(p) {
			t.Errorf("IsRoot(%q) = true, want false", p)
		}
	}

	posix := newResolverFor(false)
	if posix.IsRoot(`C:\`) {
		t.Error("drive roots should not classify without drive semantics")
	}
}

func TestResolverNormalize(t *testing.T) {
	r := newResolverFor(true)

	tests := []struct {
		in, want string
	}{
		{`c:`, `C:\`},
		{`c:/`, `C:\`},
		{`C:\`, `C:\`},
		{`C:/Users/ann`, `C:\Users\ann`},
		{`C:\Users\ann`, `C:\Users\ann`},
		{`D:/Data/projects`, `D:\Data\projects`},
	}
	for _, tt := range tests {
		if got := r.Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	posix := newResolverFor(false)
	if got := posix.Normalize("/home/ann"); got != "/home/ann" {
		t.Errorf("Normalize(/home/ann) = %q", got)
	}
}

func TestResolverParentOf(t *testing.T) {
	r := newResolverFor(true)

	tests := []struct {
		in, want string
	}{
		{`C:\`, DrivesParent},
		{`c:`, DrivesParent},
		{`C:\Users`, `C:\`},
		{`c:/users`, `C:\`},
		{`C:\Users\ann`, `C:\Users`},
		{`C:\Users\ann\`, `C:\Users`},
		{`D:/Data/projects/go`, `D:\Data\projects`},
	}
	for _, tt := range tests {
		if got := r.ParentOf(tt.in); got != tt.want {
			t.Errorf("ParentOf(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	posix := newResolverFor(false)
	if got := posix.ParentOf("/home/ann"); got != "/home" {
		t.Errorf("ParentOf(/home/ann) = %q", got)
	}
}
