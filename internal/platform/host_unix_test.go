//go:build unix

package platform

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// fakeInterpreter writes a script that answers `/c echo %NAME%` like
// cmd.exe, knowing only USERNAME.
func fakeInterpreter(t *testing.T) string {
	t.Helper()
	script := filepath.Join(t.TempDir(), "cmd.exe")
	body := "#!/bin/sh\ncase \"$3\" in\n%USERNAME%) printf 'me\\r\\n' ;;\n*) printf '%s\\r\\n' \"$3\" ;;\nesac\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatal(err)
	}
	return script
}

func TestWindowsEnv(t *testing.T) {
	w := &WSL{Interpreter: fakeInterpreter(t)}

	got, err := w.WindowsEnv(t.Context(), "USERNAME")
	if err != nil {
		t.Fatalf("WindowsEnv: %v", err)
	}
	if string(got) != "me" {
		t.Errorf("WindowsEnv(USERNAME) = %q, want %q", got, "me")
	}

	if _, err := w.WindowsEnv(t.Context(), "NOT_SET"); !errors.Is(err, ErrEnvUnset) {
		t.Errorf("WindowsEnv(NOT_SET) error = %v, want ErrEnvUnset", err)
	}
}

func TestWindowsEnvInterpreterMissing(t *testing.T) {
	w := &WSL{Interpreter: filepath.Join(t.TempDir(), "missing.exe")}
	if _, err := w.WindowsEnv(t.Context(), "USERNAME"); err == nil {
		t.Error("WindowsEnv succeeded without an interpreter")
	}
}

func TestIdentity(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link")
	if err := os.Symlink(dir, link); err != nil {
		t.Fatal(err)
	}

	w := &WSL{}
	dirID, err := w.Identity(dir)
	if err != nil {
		t.Fatalf("Identity(dir): %v", err)
	}
	linkID, err := w.Identity(link)
	if err != nil {
		t.Fatalf("Identity(link): %v", err)
	}
	if dirID != linkID {
		t.Errorf("symlink identity %+v differs from target %+v", linkID, dirID)
	}
	fileID, err := w.Identity(file)
	if err != nil {
		t.Fatalf("Identity(file): %v", err)
	}
	if fileID == dirID {
		t.Error("distinct paths share an identity")
	}
	if _, err := w.Identity(filepath.Join(dir, "missing")); err == nil {
		t.Error("Identity of missing path succeeded")
	}
}
