// Package paths locates game data, such as the resources root, in the places
// a checkout, an installed binary or a bazel-style runfiles tree keep it.
package paths

import (
	"os"
	"path/filepath"

	"github.com/golang/glog"
)

// PossiblePathDirs returns the directories Find looks in, in order.
func PossiblePathDirs() []string {
	dirs := []string{"."}
	if gopath := os.Getenv("GOPATH"); gopath != "" {
		dirs = append(dirs, filepath.Join(gopath, "src", "badc0de.net", "pkg", "go-hypatia"))
	}
	if len(os.Args) > 0 {
		dirs = append(dirs, os.Args[0]+".runfiles/go_hypatia")
	}
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}
	return dirs
}

// PossiblePaths returns every location Find would check for fileName.
func PossiblePaths(fileName string) []string {
	dirs := PossiblePathDirs()
	paths := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		paths = append(paths, filepath.Join(dir, fileName))
	}
	return paths
}

// Find locates the passed file or directory shortname and returns an
// absolute or relative path to find it at, or an empty string.
//
// For example, for "resources" it may return
// "mybinary.runfiles/go_hypatia/resources".
func Find(fileName string) string {
	for _, path := range PossiblePaths(fileName) {
		if _, err := os.Stat(path); err == nil {
			glog.V(1).Infof("paths.Find(%q)=%s", fileName, path)
			return path
		}
	}
	return ""
}
