package paths

import (
	"errors"
	"testing"

	"github.com/sungur/wslpath/internal/codec"
)

func TestToWSL(t *testing.T) {
	root := NewRoot("Ubuntu", "")
	tests := []struct {
		name  string
		input string
		sep   codec.Separator
		want  string
	}{
		{"drive path", `C:\Users\a`, codec.Backward, "/mnt/c/Users/a"},
		{"bare drive", "C:", codec.Backward, "/mnt/c"},
		{"lower-case drive", `d:\x`, codec.Backward, "/mnt/d/x"},
		{"drive root", `E:\`, codec.Backward, "/mnt/e/"},
		{"unc", `\\wsl$\Ubuntu\home\me`, codec.Backward, "/home/me"},
		{"unc root", `\\wsl$\Ubuntu`, codec.Backward, "/"},
		{"unc root with separator", `\\wsl$\Ubuntu\`, codec.Backward, "/"},
		{"unc case-insensitive", `\\WSL$\ubuntu\etc`, codec.Backward, "/etc"},
		{"unc alias", `\\wsl.localhost\Ubuntu\etc`, codec.Backward, "/etc"},
		{"verbatim drive", `\\?\C:\x`, codec.Backward, "/mnt/c/x"},
		{"escaped bytes", "C:\\a\xef\x80\xbab\xef\x81\x9c", codec.Backward, `/mnt/c/a:b\`},
		{"forward drive", "C:/Users/a", codec.Forward, "/mnt/c/Users/a"},
		{"forward unc", "//wsl$/Ubuntu/home", codec.Forward, "/home"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := &ToWSL{Root: root, Separator: tt.sep}
			got, err := conv.Append(nil, []byte(tt.input))
			if err != nil {
				t.Fatalf("Append(%q): %v", tt.input, err)
			}
			if string(got) != tt.want {
				t.Errorf("Append(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestToWSLParseErrors(t *testing.T) {
	root := &Root{
		UNC:    []byte("//wsl$/Ubuntu"),
		Mounts: []DriveMount{{Letter: 'c', Path: []byte("/mnt/c")}},
	}
	tests := []struct {
		name  string
		input string
		sep   codec.Separator
	}{
		{"relative", "relative/path", codec.Forward},
		{"relative backslash", `relative\path`, codec.Backward},
		{"empty", "", codec.Backward},
		{"drive-relative", "C:foo", codec.Backward},
		{"drive-relative forward", `C:\foo`, codec.Forward},
		{"unmounted drive", `E:\x`, codec.Backward},
		{"other distro", `\\wsl$\Ubuntu2\x`, codec.Backward},
		{"other server", `\\server\share`, codec.Backward},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := &ToWSL{Root: root, Separator: tt.sep}
			_, err := conv.Append(nil, []byte(tt.input))
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Errorf("Append(%q) error = %v, want *ParseError", tt.input, err)
			}
		})
	}
}

func TestToWSLIllegalOffsets(t *testing.T) {
	root := NewRoot("Ubuntu", "")
	tests := []struct {
		name   string
		input  string
		class  codec.Class
		offset int
	}{
		{"reserved in drive path", `C:\a|b`, codec.Reserved, 4},
		{"after verbatim prefix", "\\\\?\\C:\\a\tb", codec.LowControl, 8},
		{"slash with backslash convention", `C:\a/b`, codec.ForwardSlash, 4},
		{"slash in prefix", `C:/a`, codec.ForwardSlash, 2},
		{"in unc path", `\\wsl$\Ubuntu\a*`, codec.Reserved, 15},
		{"escaped null", "C:\\\xef\x80\x80", codec.Null, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := &ToWSL{Root: root}
			_, err := conv.Append(nil, []byte(tt.input))
			var ie *codec.IllegalByteError
			if !errors.As(err, &ie) {
				t.Fatalf("Append(%q) error = %v, want *IllegalByteError", tt.input, err)
			}
			if ie.Class != tt.class || ie.Offset != tt.offset {
				t.Errorf("Append(%q) = {%s %d}, want {%s %d}", tt.input, ie.Class, ie.Offset, tt.class, tt.offset)
			}
			if tt.input[ie.Offset] != ie.Byte && ie.Class != codec.Null {
				t.Errorf("offset %d points at %q, error names %q", ie.Offset, tt.input[ie.Offset], ie.Byte)
			}
		})
	}
}

func TestToWSLRootLoop(t *testing.T) {
	root := NewRoot("Ubuntu", "")
	root.RootLoop = []byte("Packages/X/LocalState/rootfs")
	root.RootLoopDrive = 'c'
	tests := []struct {
		input string
		want  string
	}{
		{`C:\Packages\X\LocalState\rootfs\etc\passwd`, "/mnt/c/etc/passwd"},
		{`c:\packages\x\localstate\ROOTFS\etc`, "/mnt/c/etc"},
		{`C:\Packages\X\LocalState\rootfs`, "/mnt/c/"},
		{`C:\Packages\X\LocalState\rootfsX\a`, "/mnt/c/Packages/X/LocalState/rootfsX/a"},
		{`C:\Other\Packages\X\LocalState\rootfs`, "/mnt/c/Other/Packages/X/LocalState/rootfs"},
		{`D:\Packages\X\LocalState\rootfs\etc`, "/mnt/d/Packages/X/LocalState/rootfs/etc"},
		{`C:`, "/mnt/c"},
	}

	conv := &ToWSL{Root: root}
	for _, tt := range tests {
		got, err := conv.Append(nil, []byte(tt.input))
		if err != nil {
			t.Errorf("Append(%q): %v", tt.input, err)
			continue
		}
		if string(got) != tt.want {
			t.Errorf("Append(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestToWSLAppendsToDst(t *testing.T) {
	conv := &ToWSL{Root: NewRoot("Ubuntu", "")}
	dst := []byte("/mnt/c/a\n")
	got, err := conv.Append(dst, []byte(`C:\b`))
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if string(got) != "/mnt/c/a\n/mnt/c/b" {
		t.Errorf("Append = %q", got)
	}

	got, err = conv.Append(got, []byte("C:b"))
	if err == nil {
		t.Fatal("Append(C:b) succeeded")
	}
	if string(got) != "/mnt/c/a\n/mnt/c/b" {
		t.Errorf("failed Append returned %q, want dst unchanged", got)
	}
}
