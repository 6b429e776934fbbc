package naming

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestUniqueMissingPathUnchanged(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a.txt")
	if got := Unique(p); got != p {
		t.Errorf("Unique(%q) = %q, want unchanged", p, got)
	}
}

func TestUniqueIsGapless(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "a.txt")
	touch(t, f)

	if got := filepath.Base(Unique(f)); got != "a (1).txt" {
		t.Errorf("first collision = %q, want %q", got, "a (1).txt")
	}

	touch(t, filepath.Join(dir, "a (1).txt"))
	if got := filepath.Base(Unique(f)); got != "a (2).txt" {
		t.Errorf("second collision = %q, want %q", got, "a (2).txt")
	}
}

func TestUniqueResultNeverExists(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "photo.jpg")
	touch(t, f)
	for i := 0; i < 5; i++ {
		got := Unique(f)
		if _, err := os.Lstat(got); err == nil {
			t.Fatalf("Unique returned existing path %q", got)
		}
		touch(t, got)
	}
	if got := filepath.Base(Unique(f)); got != "photo (6).jpg" {
		t.Errorf("got %q, want %q", got, "photo (6).jpg")
	}
}

func TestUniqueNoExtension(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "README")
	touch(t, f)
	if got := filepath.Base(Unique(f)); got != "README (1)" {
		t.Errorf("got %q, want %q", got, "README (1)")
	}
}

func TestUniqueDanglingSymlinkIsTaken(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink test not reliable on Windows")
	}
	dir := t.TempDir()
	link := filepath.Join(dir, "a.txt")
	if err := os.Symlink(filepath.Join(dir, "nowhere"), link); err != nil {
		t.Fatal(err)
	}
	if got := filepath.Base(Unique(link)); got != "a (1).txt" {
		t.Errorf("got %q, want %q", got, "a (1).txt")
	}
}

func TestSplitExt(t *testing.T) {
	tests := []struct {
		name     string
		wantStem string
		wantExt  string
	}{
		{"a.txt", "a", ".txt"},
		{"archive.tar.gz", "archive.tar", ".gz"},
		{"README", "README", ""},
		{".bashrc", ".bashrc", ""},
		{"..hidden", "..hidden", ""},
		{".config.yaml", ".config", ".yaml"},
		{"trailing.", "trailing.", ""},
		{"a.b.", "a.b.", ""},
	}

	for _, tt := range tests {
		stem, ext := SplitExt(tt.name)
		if stem != tt.wantStem || ext != tt.wantExt {
			t.Errorf("SplitExt(%q) = (%q, %q), want (%q, %q)", tt.name, stem, ext, tt.wantStem, tt.wantExt)
		}
	}
}

func TestReservationsNeverRepeat(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.txt"))

	r := NewReservations()
	first := r.Claim(filepath.Join(dir, "a.txt"))
	second := r.Claim(filepath.Join(dir, "a.txt"))
	other := r.Claim(filepath.Join(dir, "b.txt"))

	if filepath.Base(first) != "a (1).txt" {
		t.Errorf("first = %q", first)
	}
	if filepath.Base(second) != "a (2).txt" {
		t.Errorf("second = %q", second)
	}
	if filepath.Base(other) != "b.txt" {
		t.Errorf("other = %q", other)
	}
}

func TestUniqueTrailingDotName(t *testing.T) {
	dir := filepath.Join("base", "2023", "01")
	taken := map[string]bool{filepath.Join(dir, "name."): true}
	got := UniqueFunc(filepath.Join(dir, "name."), func(p string) bool { return taken[p] })
	if want := filepath.Join(dir, "name. (1)"); got != want {
		t.Errorf("UniqueFunc = %q, want %q", got, want)
	}
}
