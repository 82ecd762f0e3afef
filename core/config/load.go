package config

import (
	"log"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory.
func Load(path string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	return LoadFs(afero.NewBasePathFs(afero.NewOsFs(), path))
}

// LoadFs loads the configuration from the root of the given filesystem.
func LoadFs(fs afero.Fs) (*Configuration, error) {
	configContents, err := afero.ReadFile(fs, ConfigurationName)
	if err != nil {
		return nil, err
	}
	var out Configuration
	if err := yaml.UnmarshalStrict(configContents, &out); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", ConfigurationName)
	}
	if err := out.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid %s", ConfigurationName)
	}
	out.configFs = fs
	return &out, nil
}

// Initialize writes the default configuration to dir. An existing
// configuration is left in place.
func Initialize(dir string, logger *log.Logger) error {
	fs := afero.NewOsFs()
	if err := fs.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return initializeFs(afero.NewBasePathFs(fs, dir), logger)
}

func initializeFs(fs afero.Fs, logger *log.Logger) error {
	exists, err := afero.Exists(fs, ConfigurationName)
	switch {
	case err != nil:
		return err
	case exists:
		logger.Printf("%s already exists, skipping", ConfigurationName)
		return nil
	}

	logger.Printf("Writing %s", ConfigurationName)
	return afero.WriteFile(fs, ConfigurationName, defaultConfigData, 0600)
}
