/*
Package clzgen generates the ".clz" class listings read by the Tattletale report tool, either for a module
distribution (every archive beneath a "modules" tree) or for a single API archive.
*/
package clzgen

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"

	"github.com/lovewebshell/clzgen/clzgen/classlist"
	"github.com/lovewebshell/clzgen/clzgen/logger"
	"github.com/lovewebshell/clzgen/clzgen/source"
	"github.com/lovewebshell/clzgen/internal/log"
)

// Config holds everything needed for one generation run.
type Config struct {
	Action     Action
	InputPath  string
	OutputPath string
}

// Generate lists the classes of the configured input and writes the report, returning its path. Archives
// that cannot be read are logged and left empty in the report; they do not fail the run.
func Generate(fs afero.Fs, cfg Config) (string, error) {
	switch cfg.Action {
	case ModuleAction:
		return generateModuleReport(fs, cfg)
	case APIAction:
		return generateAPIReport(fs, cfg)
	default:
		return "", fmt.Errorf("unsupported action=%q (expected one of %v)", cfg.Action, AllActions)
	}
}

func generateModuleReport(fs afero.Fs, cfg Config) (string, error) {
	location, err := resolveInput(fs, cfg, source.DirectoryScheme)
	if err != nil {
		return "", err
	}

	label, err := ModuleLabel(location)
	if err != nil {
		return "", err
	}
	log.Infof("processing module distribution: %s", label)

	walker := classlist.NewWalker(fs)
	listing, err := walker.WalkModuleTree(location, label)
	if err := archiveErrors(err); err != nil {
		return "", err
	}

	return finishReport(fs, cfg, label, listing, walker.Monitor())
}

func generateAPIReport(fs afero.Fs, cfg Config) (string, error) {
	location, err := resolveInput(fs, cfg, source.FileScheme)
	if err != nil {
		return "", err
	}

	label, err := APILabel(location)
	if err != nil {
		return "", err
	}
	log.Infof("processing API archive: %s", label)

	walker := classlist.NewWalker(fs)
	listing, err := walker.WalkArchive(location)
	if err := archiveErrors(err); err != nil {
		return "", err
	}

	return finishReport(fs, cfg, label, listing, walker.Monitor())
}

func resolveInput(fs afero.Fs, cfg Config, expected source.Scheme) (string, error) {
	scheme, location, err := source.DetectScheme(fs, cfg.InputPath)
	if err != nil {
		return "", fmt.Errorf("unable to resolve input path: %w", err)
	}

	switch scheme {
	case expected:
		return location, nil
	case source.UnknownScheme:
		return "", fmt.Errorf("input path=%q does not exist", location)
	default:
		return "", fmt.Errorf("input path=%q is a %s but action=%q requires a %s", location, scheme, cfg.Action, expected)
	}
}

// archiveErrors logs and swallows per-archive failures, which walkers report as a multierror. Any other
// error means the input could not be walked at all and is returned.
func archiveErrors(err error) error {
	var merr *multierror.Error
	if errors.As(err, &merr) {
		log.Warnf("%d archive(s) could not be fully listed, their classes are missing from the report", len(merr.Errors))
		return nil
	}
	return err
}

func finishReport(fs afero.Fs, cfg Config, label string, listing classlist.Listing, monitor classlist.Monitor) (string, error) {
	reportPath, err := ReportPath(cfg.OutputPath, label)
	if err != nil {
		return "", err
	}

	log.Infof("writing report file: %s", reportPath)
	if err := writeReport(fs, reportPath, listing); err != nil {
		return "", err
	}

	log.Infof("listed %d classes from %d archive(s)", monitor.ClassesDiscovered.Current(), monitor.ArchivesProcessed.Current())
	return reportPath, nil
}

// SetLogger sets the logger used by the clzgen library.
func SetLogger(logger logger.Logger) {
	log.Log = logger
}
