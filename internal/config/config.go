package config

import (
	"bytes"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/zxhio/pinball/internal/errcode"
)

// Load reads and decodes the profile file at path. Errors carry
// errcode.CodeConfig; printing and exiting is left to the caller.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errcode.New(errcode.CodeConfig, "unable to open config file %s: %v", path, err)
	}

	cfg, err := Parse(content)
	if err != nil {
		return nil, errors.Wrapf(err, "config file %s", path)
	}

	logrus.WithFields(logrus.Fields{"path": path, "profiles": len(cfg.Profiles)}).Debug("Loaded config")
	return cfg, nil
}

// Parse decodes a profile document. Unknown keys are logged and ignored,
// a missing name key fails the parse.
func Parse(content []byte) (*Config, error) {
	var cfg Config
	if err := decode(content, &cfg); err != nil {
		return nil, err
	}

	var keys nameKeys
	if err := toml.Unmarshal(content, &keys); err != nil {
		return nil, errcode.New(errcode.CodeConfig, "failed to parse config: %v", err)
	}
	if err := check(&keys); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decode(content []byte, v any) error {
	dec := toml.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()

	err := dec.Decode(v)
	if err == nil {
		return nil
	}

	// The document is fully decoded when only unknown keys were found.
	var serr *toml.StrictMissingError
	if errors.As(err, &serr) {
		keys := make([]string, 0, len(serr.Errors))
		for _, e := range serr.Errors {
			keys = append(keys, strings.Join(e.Key(), "."))
		}
		logrus.WithField("keys", keys).Warn("Ignore unknown config keys")
		return nil
	}

	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		row, col := derr.Position()
		return errcode.New(errcode.CodeConfig, "failed to parse config at line %d, column %d: %s", row, col, derr.Error())
	}
	return errcode.New(errcode.CodeConfig, "failed to parse config: %v", err)
}

// Profile returns the first profile named name, or nil.
func (c *Config) Profile(name string) *Profile {
	for _, p := range c.Profiles {
		if p.Name == name {
			return p
		}
	}
	return nil
}
