/*
Package classlist derives fully-qualified class names from the entries of Java archives, either for a single
archive or for every archive beneath a module directory tree.
*/
package classlist

import (
	"archive/zip"
	"strings"

	"github.com/spf13/afero"

	"github.com/lovewebshell/clzgen/internal/file"
	"github.com/lovewebshell/clzgen/internal/log"
)

const classFileSuffix = ".class"

var classFileGlob = "**/*" + classFileSuffix

// ListArchiveClasses returns the class names of every ".class" entry of the archive, in entry order. On
// failure the names gathered so far are returned along with the error; the archive is always closed.
func ListArchiveClasses(fs afero.Fs, archivePath string) ([]string, error) {
	classes := []string{}

	visitor := func(f *zip.File) error {
		name := ClassName(f.Name)
		log.Tracef("found class=%q in archive=%q", name, archivePath)
		classes = append(classes, name)
		return nil
	}

	err := file.TraverseFilesInZip(fs, archivePath, visitor, classFileGlob)
	return classes, err
}

// ClassName converts a class entry name such as "org/example/Foo$Bar.class" into "org.example.Foo$Bar".
func ClassName(entryName string) string {
	return strings.ReplaceAll(strings.TrimSuffix(entryName, classFileSuffix), "/", ".")
}
