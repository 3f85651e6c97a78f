package config

import (
	"bufio"
	"errors"
	"io/fs"
	"strings"

	"github.com/spf13/afero"
)

// Load reads the configuration file at path. A missing file is not an
// error; it yields the defaults.
func Load(appFS afero.Fs, path string) (*Configuration, error) {
	data, err := afero.ReadFile(appFS, path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return Default(), nil
	case err != nil:
		return nil, err
	}

	return Parse(data)
}

// LoadPathList reads a search-path file with one directory per line.
// Entries are used verbatim when forming candidate executable paths, so
// each line should end with a path separator. Blank lines are skipped.
//
// Callers are expected to fall back to the environment search path when
// this returns an error; absence of the file is not reported to the user.
func LoadPathList(appFS afero.Fs, path string) ([]string, error) {
	fd, err := appFS.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	var dirs []string
	scanner := bufio.NewScanner(fd)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		dirs = append(dirs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return dirs, nil
}
