package file

import (
	"archive/zip"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"github.com/lovewebshell/clzgen/internal/log"
)

// TraverseFilesInZip calls the visitor for every entry of the archive, in central directory order. When globs
// are given only entries whose name matches at least one of them are visited. The archive is closed before
// returning, whatever the outcome.
func TraverseFilesInZip(fs afero.Fs, archivePath string, visitor func(*zip.File) error, globs ...string) error {
	zipReader, err := OpenZip(fs, archivePath)
	if err != nil {
		return fmt.Errorf("unable to open zip archive (%s): %w", archivePath, err)
	}
	defer func() {
		if err := zipReader.Close(); err != nil {
			log.Errorf("unable to close zip archive (%s): %+v", archivePath, err)
		}
	}()

	for _, file := range zipReader.Reader.File {
		if len(globs) > 0 && !MatchesAnyGlob(file.Name, globs...) {
			continue
		}

		if err := visitor(file); err != nil {
			return err
		}
	}
	return nil
}

// MatchesAnyGlob reports whether the slash-separated name matches any of the doublestar patterns. Invalid
// patterns never match.
func MatchesAnyGlob(name string, globs ...string) bool {
	for _, glob := range globs {
		if matches, err := doublestar.Match(glob, name); err == nil && matches {
			return true
		}
	}
	return false
}
