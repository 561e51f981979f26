package clzgen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"

	"github.com/lovewebshell/clzgen/clzgen/classlist"
	"github.com/lovewebshell/clzgen/internal/log"
)

const reportExtension = ".clz"

// ReportPath joins the output directory and label by plain concatenation, which is the layout the report
// tool expects: outputDir must end with a path separator.
func ReportPath(outputDir, label string) (string, error) {
	dir, err := homedir.Expand(outputDir)
	if err != nil {
		return "", fmt.Errorf("unable to expand output path=%q: %w", outputDir, err)
	}

	if !strings.HasSuffix(dir, "/") && !strings.HasSuffix(dir, string(os.PathSeparator)) {
		log.Warnf("output path=%q does not end with a path separator, the report name will be appended to it as-is", outputDir)
	}
	return dir + label + reportExtension, nil
}

func writeReport(fs afero.Fs, reportPath string, listing classlist.Listing) (err error) {
	if err := fs.MkdirAll(filepath.Dir(reportPath), 0755); err != nil {
		return fmt.Errorf("unable to create report directory for %q: %w", reportPath, err)
	}

	f, err := fs.OpenFile(reportPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("unable to create report=%q: %w", reportPath, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("unable to close report=%q: %w", reportPath, closeErr)
		}
	}()

	if _, err := listing.WriteTo(f); err != nil {
		return fmt.Errorf("unable to write report=%q: %w", reportPath, err)
	}
	return nil
}
