package file

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zipBytes(t *testing.T, entries ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, name := range entries {
		f, err := w.Create(name)
		require.NoError(t, err)
		if strings.HasSuffix(name, "/") {
			continue
		}
		_, err = f.Write([]byte(name))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func writeFile(t *testing.T, fs afero.Fs, path string, contents []byte) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, afero.WriteFile(fs, path, contents, 0644))
}

func visitedNames(t *testing.T, fs afero.Fs, path string, globs ...string) ([]string, error) {
	t.Helper()
	var names []string
	err := TraverseFilesInZip(fs, path, func(f *zip.File) error {
		names = append(names, f.Name)
		return nil
	}, globs...)
	return names, err
}

func TestTraverseFilesInZip(t *testing.T) {
	entries := []string{"META-INF/", "META-INF/MANIFEST.MF", "a/B.class", "a/C.txt", "a/d/E.class", "F.class"}

	tests := []struct {
		name     string
		globs    []string
		expected []string
	}{
		{
			name:     "no filter visits every entry in order",
			expected: entries,
		},
		{
			name:     "class glob",
			globs:    []string{"**/*.class"},
			expected: []string{"a/B.class", "a/d/E.class", "F.class"},
		},
		{
			name:     "multiple globs",
			globs:    []string{"META-INF/*.MF", "a/*.txt"},
			expected: []string{"META-INF/MANIFEST.MF", "a/C.txt"},
		},
		{
			name:  "no match",
			globs: []string{"**/*.xml"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeFile(t, fs, "/lib/test.jar", zipBytes(t, entries...))

			names, err := visitedNames(t, fs, "/lib/test.jar", test.globs...)
			require.NoError(t, err)
			assert.Equal(t, test.expected, names)
		})
	}
}

func TestTraverseFilesInZip_VisitorError(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/lib/test.jar", zipBytes(t, "a/B.class", "a/C.class"))

	stop := errors.New("stop")
	var visited int
	err := TraverseFilesInZip(fs, "/lib/test.jar", func(*zip.File) error {
		visited++
		return stop
	})

	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, visited)
}

func TestTraverseFilesInZip_OpenErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/lib/broken.jar", []byte("this is not a zip archive"))
	writeFile(t, fs, "/lib/empty.jar", nil)
	require.NoError(t, fs.MkdirAll("/lib/dir.jar", 0755))

	tests := []struct {
		name string
		path string
		is   error
	}{
		{name: "missing file", path: "/lib/missing.jar", is: os.ErrNotExist},
		{name: "not a zip", path: "/lib/broken.jar", is: zip.ErrFormat},
		{name: "zero bytes", path: "/lib/empty.jar", is: zip.ErrFormat},
		{name: "directory", path: "/lib/dir.jar"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			names, err := visitedNames(t, fs, test.path)
			require.Error(t, err)
			if test.is != nil {
				assert.ErrorIs(t, err, test.is)
			}
			assert.Empty(t, names)
		})
	}
}

func TestOpenZip_PrefixedArchive(t *testing.T) {
	fs := afero.NewMemMapFs()
	stub := []byte("#!/bin/sh\nexec java -jar \"$0\" \"$@\"\n")
	writeFile(t, fs, "/bin/tool.jar", append(stub, zipBytes(t, "org/example/Main.class")...))

	names, err := visitedNames(t, fs, "/bin/tool.jar")
	require.NoError(t, err)
	assert.Equal(t, []string{"org/example/Main.class"}, names)
}

func TestOpenZip_EmptyArchive(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/lib/nothing.jar", zipBytes(t))

	r, err := OpenZip(fs, "/lib/nothing.jar")
	require.NoError(t, err)
	assert.Empty(t, r.File)
	assert.NoError(t, r.Close())
}

func TestMatchesAnyGlob(t *testing.T) {
	assert.True(t, MatchesAnyGlob("modules/x.jar", "**/*.jar"))
	assert.True(t, MatchesAnyGlob("x.jar", "**/*.jar"))
	assert.False(t, MatchesAnyGlob("modules/x.JAR", "**/*.jar"))
	assert.False(t, MatchesAnyGlob("modules/x.jar", "[", "**/*.war"))
}
