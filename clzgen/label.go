package clzgen

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lovewebshell/clzgen/clzgen/classlist"
	"github.com/lovewebshell/clzgen/internal"
)

const (
	moduleLabelMarker = "/jboss-"
	apiLabelMarker    = "/javaee-api-"
)

var ErrMarkerNotFound = errors.New("label marker not found")

// ModuleLabel derives the label of a module distribution from its path: the text between the "/jboss-" and
// "/modules/" markers. For "/opt/jboss-eap-7.1/modules/system/layers/base" this is "eap-7.1".
func ModuleLabel(inputPath string) (string, error) {
	p := filepath.ToSlash(inputPath)
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}

	label, ok := internal.SubstringBetween(p, moduleLabelMarker, classlist.ModuleRootMarker)
	if !ok || label == "" {
		return "", fmt.Errorf("unable to derive module label from path=%q between %q and %q: %w", inputPath, moduleLabelMarker, classlist.ModuleRootMarker, ErrMarkerNotFound)
	}
	return label, nil
}

// APILabel derives the label of an API archive from its path: everything from the "/javaee-api-" marker on,
// marker included. For "/opt/javaee-api-7.0.jar" this is "/javaee-api-7.0.jar".
func APILabel(inputPath string) (string, error) {
	label, ok := internal.SubstringFrom(filepath.ToSlash(inputPath), apiLabelMarker)
	if !ok {
		return "", fmt.Errorf("unable to derive API label from path=%q starting at %q: %w", inputPath, apiLabelMarker, ErrMarkerNotFound)
	}
	return label, nil
}
