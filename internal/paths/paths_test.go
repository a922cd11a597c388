package paths

import (
	"errors"
	"testing"
)

func TestHasPrefixFold(t *testing.T) {
	tests := []struct {
		path   string
		prefix string
		sep    byte
		want   bool
	}{
		{`\\wsl$\Ubuntu\home`, "//wsl$/Ubuntu", '\\', true},
		{`\\WSL$\ubuntu`, "//wsl$/Ubuntu", '\\', true},
		{"//wsl$/Ubuntu", "//wsl$/Ubuntu", '/', true},
		{"//wsl$/Ubuntu", "//wsl$/Ubuntu", '\\', false},
		{`\\wsl$`, "//wsl$/Ubuntu", '\\', false},
		{`\\wsl.localhost\Ubuntu`, "//wsl$/Ubuntu", '\\', false},
		{"", "", '/', true},
	}

	for _, tt := range tests {
		got := hasPrefixFold([]byte(tt.path), []byte(tt.prefix), tt.sep)
		if got != tt.want {
			t.Errorf("hasPrefixFold(%q, %q, %q) = %v, want %v", tt.path, tt.prefix, tt.sep, got, tt.want)
		}
	}
}

func TestAtBoundary(t *testing.T) {
	p := []byte(`ab\c`)
	tests := []struct {
		i    int
		want bool
	}{
		{0, false},
		{2, true},
		{3, false},
		{4, true},
	}

	for _, tt := range tests {
		if got := atBoundary(p, tt.i, '\\'); got != tt.want {
			t.Errorf("atBoundary(%q, %d) = %v, want %v", p, tt.i, got, tt.want)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		err  error
		want string
	}{
		{&ParseError{Message: "drive-relative path"}, "parse error: drive-relative path"},
		{&MountError{Err: cause}, "enumerating drvfs mounts: boom"},
		{&EnvQueryError{Var: "USERNAME", Err: cause}, "Windows environment variable lookup failed for USERNAME: boom"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}

	if !errors.Is(&MountError{Err: cause}, cause) {
		t.Error("MountError does not unwrap to its cause")
	}
	if !errors.Is(&EnvQueryError{Err: cause}, cause) {
		t.Error("EnvQueryError does not unwrap to its cause")
	}
}
