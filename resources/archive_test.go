package resources

import (
	"bytes"
	"path/filepath"
	"sort"
	"testing"

	"badc0de.net/pkg/go-hypatia/ttesting"
)

func sortedKeys(m RawAssetMap) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestReadArchiveDirectoryAndZipMatch(t *testing.T) {
	root := t.TempDir()
	files := heroFiles(t)
	writeDir(t, filepath.Join(root, "walkabouts", "baker"), files)
	writeZip(t, filepath.Join(root, "walkabouts", "baker2.zip"), files)

	fromDir, err := ReadArchive(root, "walkabouts", "baker")
	if err != nil {
		t.Fatalf("reading directory: %v", err)
	}
	fromZip, err := ReadArchive(root, "walkabouts", "baker2")
	if err != nil {
		t.Fatalf("reading zip: %v", err)
	}

	ttesting.AssertEqualInt(t, "directory file count", len(fromDir), len(files))
	ttesting.AssertEqualInt(t, "zip file count", len(fromZip), len(files))
	for name, want := range files {
		if !bytes.Equal(fromDir[name], want) {
			t.Errorf("directory %q: content differs", name)
		}
		if !bytes.Equal(fromZip[name], want) {
			t.Errorf("zip %q: content differs", name)
		}
	}
	if fromDir.Size() != fromZip.Size() {
		t.Errorf("directory holds %d bytes, zip %d", fromDir.Size(), fromZip.Size())
	}
}

func TestReadArchiveZipKeepsPrefixes(t *testing.T) {
	root := t.TempDir()
	writeZip(t, filepath.Join(root, "walkabouts", "nested.zip"), map[string][]byte{
		"top.txt":             []byte("top"),
		"nested/only.gif":     {1},
		"nested/deep/bio.txt": []byte("deep"),
	})

	raw, err := ReadArchive(root, "walkabouts", "nested")
	if err != nil {
		t.Fatalf("reading zip: %v", err)
	}
	got := sortedKeys(raw)
	want := []string{"nested/deep/bio.txt", "nested/only.gif", "top.txt"}
	ttesting.AssertEqualInt(t, "key count", len(got), len(want))
	for idx := range want {
		if idx < len(got) {
			ttesting.AssertEqualString(t, "key", got[idx], want[idx])
		}
	}
}

func TestReadArchiveDirectoryIsNotRecursive(t *testing.T) {
	root := t.TempDir()
	writeDir(t, filepath.Join(root, "walkabouts", "flat"), map[string][]byte{
		"top.txt":        []byte("top"),
		"sub/hidden.txt": []byte("hidden"),
	})

	raw, err := ReadArchive(root, "walkabouts", "flat")
	if err != nil {
		t.Fatalf("reading directory: %v", err)
	}
	ttesting.AssertEqualInt(t, "only immediate files are read", len(raw), 1)
	ttesting.AssertEqualString(t, "top level content", string(raw["top.txt"]), "top")
}

func TestReadArchiveDirectoryWins(t *testing.T) {
	root := t.TempDir()
	writeDir(t, filepath.Join(root, "walkabouts", "twin"), map[string][]byte{"bio.txt": []byte("from directory")})
	writeZip(t, filepath.Join(root, "walkabouts", "twin.zip"), map[string][]byte{"bio.txt": []byte("from zip")})

	raw, err := ReadArchive(root, "walkabouts", "twin")
	if err != nil {
		t.Fatalf("reading resource: %v", err)
	}
	ttesting.AssertEqualString(t, "directory content", string(raw["bio.txt"]), "from directory")
}

func TestReadArchiveNotFound(t *testing.T) {
	_, err := ReadArchive(t.TempDir(), "walkabouts", "nobody")
	ttesting.AssertErrorIs(t, "missing resource", err, ErrNotFound)
}

func TestReadArchiveStaysBelowRoot(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "resources")
	files := heroFiles(t)
	writeDir(t, filepath.Join(root, "walkabouts", "baker"), files)
	writeDir(t, filepath.Join(base, "secret"), files)
	writeZip(t, filepath.Join(base, "vault.zip"), files)

	for _, tc := range []struct {
		name           string
		category, file string
	}{
		{"parent directory", "walkabouts", "../../secret"},
		{"parent archive", "walkabouts", "../../vault"},
		{"bare parent", "walkabouts", ".."},
		{"category escapes", "..", "secret"},
		{"nested name", "walkabouts", "baker/sub"},
		{"backslash", "walkabouts", `..\secret`},
		{"current directory", "walkabouts", "."},
		{"empty name", "walkabouts", ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := ReadArchive(root, tc.category, tc.file)
			ttesting.AssertErrorIs(t, "rejected", err, ErrInvalidArgument)
			if raw != nil {
				t.Errorf("got %d files; want none", len(raw))
			}
		})
	}

	if _, err := ReadArchive(root, "walkabouts", "baker"); err != nil {
		t.Errorf("plain names should still load: %v", err)
	}
}
