package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNotFound is the error resulting if a path search failed to find an
// executable file. It is reported quietly, unlike other launch errors.
var ErrNotFound = exec.ErrNotFound

func findExecutable(file string) error {
	d, err := os.Stat(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case err != nil:
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0111 != 0 {
		return nil
	}
	return fs.ErrPermission
}

// Resolve locates the executable for name.
//
// With an empty search list it behaves like the usual shell lookup: a name
// containing a slash is tried directly and anything else is searched for
// along the inherited PATH. With a configured search list, the candidate is
// formed by plain concatenation of the first directory entry with name, the
// way the path-file format documents; there is no fallback, so a name
// missing from the first directory is not looked for in later ones.
func Resolve(name string, searchPath []string) (string, error) {
	if len(searchPath) == 0 {
		return lookPath(name)
	}

	candidate := searchPath[0] + name
	if err := findExecutable(candidate); err != nil {
		return "", fmt.Errorf("%s: %w", candidate, err)
	}
	return candidate, nil
}

func lookPath(file string) (string, error) {
	if strings.Contains(file, "/") {
		if err := findExecutable(file); err != nil {
			return "", err
		}
		return file, nil
	}

	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", ErrNotFound
}
