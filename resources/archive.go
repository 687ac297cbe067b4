package resources

import (
	"archive/zip"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// RawAssetMap maps file names, as found in a resource archive, to their
// contents.
type RawAssetMap map[string][]byte

// Size returns the total number of bytes held.
func (m RawAssetMap) Size() uint64 {
	var total uint64
	for _, b := range m {
		total += uint64(len(b))
	}
	return total
}

// ReadArchive reads every file of the resource stored under
// root/category/name.
//
// A directory with that path wins. Only its immediate files are read, keyed
// by their bare name. Otherwise an archive at the same path with a ".zip"
// suffix is read in full, and every file is keyed by its path inside the
// archive, so files in subdirectories keep their prefix ("sub/walk_north.gif").
//
// Category and name must each be a single path element below root.
func ReadArchive(root, category, name string) (RawAssetMap, error) {
	for _, elem := range []string{category, name} {
		if err := checkPathElement(elem); err != nil {
			return nil, errors.Wrapf(err, "resource %q/%q", category, name)
		}
	}
	p := filepath.Join(root, category, name)

	if st, err := os.Stat(p); err == nil && st.IsDir() {
		raw, err := ReadDirFS(os.DirFS(p))
		if err != nil {
			return nil, errors.Wrapf(err, "reading resource directory %q", p)
		}
		glog.V(2).Infof("read directory %q: %d files, %s", p, len(raw), humanize.Bytes(raw.Size()))
		return raw, nil
	}

	zr, err := zip.OpenReader(p + ".zip")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrNotFound, "resource %s/%s: neither directory %q nor archive %q exist", category, name, p, p+".zip")
		}
		return nil, errors.Wrapf(err, "opening resource archive %q", p+".zip")
	}
	defer zr.Close()

	raw, err := ReadTreeFS(&zr.Reader)
	if err != nil {
		return nil, errors.Wrapf(err, "reading resource archive %q", p+".zip")
	}
	glog.V(2).Infof("read archive %q: %d files, %s", p+".zip", len(raw), humanize.Bytes(raw.Size()))
	return raw, nil
}

// checkPathElement rejects names which could reach outside their parent
// directory once joined to it.
func checkPathElement(elem string) error {
	switch {
	case elem == "", elem == ".":
		return errors.Wrapf(ErrInvalidArgument, "path element %q names no resource", elem)
	case strings.Contains(elem, ".."):
		return errors.Wrapf(ErrInvalidArgument, "path element %q contains \"..\"", elem)
	case strings.ContainsAny(elem, `/\`) || strings.ContainsRune(elem, filepath.Separator):
		return errors.Wrapf(ErrInvalidArgument, "path element %q contains a separator", elem)
	}
	return nil
}

// ReadDirFS reads the files at the top level of fsys. Subdirectories are
// skipped.
func ReadDirFS(fsys fs.FS) (RawAssetMap, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}
	raw := RawAssetMap{}
	for _, entry := range entries {
		if entry.IsDir() {
			glog.Warningf("skipping subdirectory %q: resource directories are not read recursively", entry.Name())
			continue
		}
		b, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return nil, errors.Wrapf(err, "reading %q", entry.Name())
		}
		raw[entry.Name()] = b
	}
	return raw, nil
}

// ReadTreeFS reads every file in fsys, keyed by its slash separated path.
func ReadTreeFS(fsys fs.FS) (RawAssetMap, error) {
	raw := RawAssetMap{}
	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		b, err := fs.ReadFile(fsys, name)
		if err != nil {
			return errors.Wrapf(err, "reading %q", name)
		}
		raw[name] = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return raw, nil
}
