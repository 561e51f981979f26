/*
Package config loads the clzgen application configuration from a Java properties file.
*/
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/scylladb/go-set/strset"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/lovewebshell/clzgen/clzgen"
	"github.com/lovewebshell/clzgen/internal/log"
)

// FileName is the name of the configuration file looked up next to the executable.
const FileName = "tattletale-helper.properties"

// EmbeddedSource is reported as the source of a configuration read from the copy built into the executable.
const EmbeddedSource = "<embedded>"

const minimumKeys = 3

var requiredKeys = []string{"action", "input.path", "output.path"}

var ErrIncompleteConfig = errors.New("configuration incomplete")

//go:embed tattletale-helper.properties
var defaultConfig []byte

// Application is the parsed configuration file.
type Application struct {
	// Source is the file the configuration was read from, or EmbeddedSource.
	Source string   `mapstructure:"-"`
	Action string   `mapstructure:"action"`
	Input  location `mapstructure:"input"`
	Output location `mapstructure:"output"`
}

type location struct {
	Path string `mapstructure:"path"`
}

// LoadApplicationConfig reads FileName from searchDir, falling back to the embedded default when the file does
// not exist there (or searchDir is empty). The configuration must hold at least the three required keys.
func LoadApplicationConfig(fs afero.Fs, searchDir string) (*Application, error) {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigType("properties")

	source := readConfig(v, searchDir)

	if err := validate(v.AllKeys()); err != nil {
		return nil, fmt.Errorf("invalid configuration (%s): %w", source, err)
	}

	app := Application{Source: source}
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &app,
		Metadata:         &md,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create config decoder: %w", err)
	}
	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("unable to decode configuration (%s): %w", source, err)
	}
	for _, key := range md.Unused {
		log.Debugf("ignoring unknown configuration key=%q", key)
	}

	log.Infof("configuration loaded from %s: %d properties", source, len(v.AllKeys()))
	return &app, nil
}

func readConfig(v *viper.Viper, searchDir string) string {
	if searchDir != "" {
		customPath := filepath.Join(searchDir, FileName)
		log.Infof("searching for custom configuration file: %s", customPath)

		v.SetConfigFile(customPath)
		err := v.ReadInConfig()
		switch {
		case err == nil:
			return customPath
		case errors.Is(err, os.ErrNotExist):
			log.Infof("no custom %q found, using the embedded default", FileName)
		default:
			log.Errorf("unable to load %s, using the embedded default: %+v", customPath, err)
		}
	}

	if err := v.ReadConfig(bytes.NewReader(defaultConfig)); err != nil {
		log.Errorf("unable to load the embedded %s: %+v", FileName, err)
	}
	return EmbeddedSource
}

func validate(keys []string) error {
	if len(keys) < minimumKeys {
		return fmt.Errorf("%w: found %d properties, at least %d are needed", ErrIncompleteConfig, len(keys), minimumKeys)
	}

	missing := strset.New(requiredKeys...)
	missing.Remove(keys...)
	if !missing.IsEmpty() {
		names := missing.List()
		sort.Strings(names)
		return fmt.Errorf("%w: missing %s", ErrIncompleteConfig, strings.Join(names, ", "))
	}
	return nil
}

// ToGeneratorConfig checks the action and converts the application configuration for clzgen.Generate.
func (cfg Application) ToGeneratorConfig() (clzgen.Config, error) {
	action, err := clzgen.ParseAction(cfg.Action)
	if err != nil {
		return clzgen.Config{}, fmt.Errorf("invalid configuration (%s): %w", cfg.Source, err)
	}

	return clzgen.Config{
		Action:     action,
		InputPath:  strings.TrimSpace(cfg.Input.Path),
		OutputPath: strings.TrimSpace(cfg.Output.Path),
	}, nil
}

// ExecutableDir is the directory holding the running executable, symlinks resolved.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("unable to locate executable: %w", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("unable to resolve executable=%q: %w", exe, err)
	}
	return filepath.Dir(exe), nil
}
