/*
Package source classifies the configured input path so the driver can tell a module tree from a single archive.
*/
package source

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
)

type Scheme string

const (
	// UnknownScheme is returned when the input does not exist.
	UnknownScheme Scheme = "UnknownScheme"

	// DirectoryScheme indicates the input is a directory tree, such as a module distribution.
	DirectoryScheme Scheme = "DirectoryScheme"

	// FileScheme indicates the input is a single file, such as an API archive.
	FileScheme Scheme = "FileScheme"
)

var AllSchemes = []Scheme{
	DirectoryScheme,
	FileScheme,
}

// DetectScheme expands the user input (optionally prefixed with "dir:" or "file:") and reports what it points
// to. An explicit prefix must agree with what is found on disk.
func DetectScheme(fs afero.Fs, userInput string) (Scheme, string, error) {
	var expected Scheme
	switch {
	case strings.HasPrefix(userInput, "dir:"):
		expected = DirectoryScheme
		userInput = strings.TrimPrefix(userInput, "dir:")
	case strings.HasPrefix(userInput, "file:"):
		expected = FileScheme
		userInput = strings.TrimPrefix(userInput, "file:")
	}

	location, err := homedir.Expand(userInput)
	if err != nil {
		return UnknownScheme, "", fmt.Errorf("unable to expand path=%q: %w", userInput, err)
	}

	fileMeta, err := fs.Stat(location)
	if errors.Is(err, os.ErrNotExist) {
		return UnknownScheme, location, nil
	}
	if err != nil {
		return UnknownScheme, location, fmt.Errorf("unable to stat path=%q: %w", location, err)
	}

	scheme := FileScheme
	if fileMeta.IsDir() {
		scheme = DirectoryScheme
	}

	if expected != "" && expected != scheme {
		return UnknownScheme, location, fmt.Errorf("path=%q was given as %s but is a %s", location, expected, scheme)
	}
	return scheme, location, nil
}
