package classlist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"github.com/wagoodman/go-progress"

	"github.com/lovewebshell/clzgen/internal"
	"github.com/lovewebshell/clzgen/internal/file"
	"github.com/lovewebshell/clzgen/internal/log"
)

// ModuleRootMarker is the path segment where the header of an archive found in a module tree begins.
const ModuleRootMarker = "/modules/"

var archiveGlobs = []string{
	"**/*.jar",
}

// Monitor exposes the progress of a Walker.
type Monitor struct {
	ArchivesProcessed progress.Monitorable
	ClassesDiscovered progress.Monitorable
}

// Walker lists archives found on a filesystem. Archive failures never stop a walk: they are logged, the
// partial section is kept, and all of them are returned together once the walk is over.
type Walker struct {
	fs                afero.Fs
	archivesProcessed *progress.Manual
	classesDiscovered *progress.Manual
}

func NewWalker(fs afero.Fs) *Walker {
	return &Walker{
		fs:                fs,
		archivesProcessed: &progress.Manual{},
		classesDiscovered: &progress.Manual{},
	}
}

func (w *Walker) Monitor() Monitor {
	return Monitor{
		ArchivesProcessed: progress.Monitorable(w.archivesProcessed),
		ClassesDiscovered: progress.Monitorable(w.classesDiscovered),
	}
}

// WalkModuleTree lists every archive beneath root, in traversal order. Each section is headed by the label
// followed by the archive path from the first ModuleRootMarker onwards. Archives that could not be fully read
// are returned together as a *multierror.Error; any other error means root itself could not be walked.
func (w *Walker) WalkModuleTree(root, label string) (Listing, error) {
	archives, err := w.findArchives(root)
	if err != nil {
		return Listing{}, fmt.Errorf("unable to walk module tree=%q: %w", root, err)
	}
	log.Debugf("found %d archives beneath %q", len(archives), root)

	w.archivesProcessed.Total += int64(len(archives))

	var listing Listing
	var errs error
	for _, archivePath := range archives {
		classes, err := w.listArchive(archivePath)
		if err != nil {
			errs = multierror.Append(errs, err)
		}
		listing.Sections = append(listing.Sections, Section{
			Archive: archiveHeader(label, root, archivePath),
			Classes: classes,
		})
	}

	w.setCompleted()
	return listing, errs
}

// WalkArchive lists a single archive as one section without a header. A failure is returned as a multierror,
// like the per-archive failures of WalkModuleTree.
func (w *Walker) WalkArchive(archivePath string) (Listing, error) {
	w.archivesProcessed.Total++

	var errs error
	classes, err := w.listArchive(archivePath)
	if err != nil {
		errs = multierror.Append(errs, err)
	}

	w.setCompleted()
	return Listing{Sections: []Section{{Classes: classes}}}, errs
}

func (w *Walker) listArchive(archivePath string) ([]string, error) {
	log.Debugf("listing classes in archive=%q", archivePath)

	classes, err := ListArchiveClasses(w.fs, archivePath)
	w.archivesProcessed.N++
	w.classesDiscovered.N += int64(len(classes))

	if err != nil {
		log.Errorf("unable to list classes in archive=%q: %+v", archivePath, err)
	}
	return classes, err
}

func (w *Walker) setCompleted() {
	w.archivesProcessed.SetCompleted()
	w.classesDiscovered.SetCompleted()
}

func (w *Walker) findArchives(root string) ([]string, error) {
	var archives []string

	// a trailing separator makes the walk follow a root that is itself a symlink
	walkRoot := root
	if !strings.HasSuffix(walkRoot, string(filepath.Separator)) {
		walkRoot += string(filepath.Separator)
	}

	err := afero.Walk(w.fs, walkRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == walkRoot {
				return err
			}
			log.Warnf("unable to access path=%q: %+v", path, err)
			return nil
		}

		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		if file.MatchesAnyGlob(filepath.ToSlash(rel), archiveGlobs...) {
			archives = append(archives, path)
		}
		return nil
	})

	return archives, err
}

func archiveHeader(label, root, archivePath string) string {
	absPath := archivePath
	if !filepath.IsAbs(absPath) {
		if p, err := filepath.Abs(absPath); err == nil {
			absPath = p
		}
	}

	if fromMarker, ok := internal.SubstringFrom(filepath.ToSlash(absPath), ModuleRootMarker); ok {
		return label + fromMarker
	}

	rel, err := filepath.Rel(root, archivePath)
	if err != nil {
		rel = filepath.Base(archivePath)
	}
	log.Debugf("archive=%q has no %q segment, using path relative to the module root", archivePath, ModuleRootMarker)
	return label + "/" + filepath.ToSlash(rel)
}
