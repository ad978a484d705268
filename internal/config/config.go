// Package config loads the optional .ocmigrate.toml defaults file. The file
// supplies defaults for flags the operator sets rarely; command-line flags
// always win over file values.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/ocmigrate/internal/messages"
)

// FileName is the defaults file looked up under the project root.
const FileName = ".ocmigrate.toml"

// Config holds optional defaults for a migration run.
type Config struct {
	// Conflict is the default conflict policy (skip, overwrite, prompt).
	Conflict string `toml:"conflict"`
	// Target is the default destination config (project, global).
	Target string `toml:"target"`
	// IncludeLocal enables the settings.local.json permission overlay.
	IncludeLocal *bool `toml:"include-local"`
}

// Load reads the defaults file under root. A missing file yields a zero
// Config; a present file must parse and contain only recognized keys.
func Load(root string) (*Config, error) {
	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf(messages.PlanReadFailedFmt, path, err)
	}
	return parse(data, path)
}

func parse(data []byte, source string) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidFileFmt, source, err)
	}
	if err := decodeStrict(data); err != nil {
		return nil, fmt.Errorf(messages.ConfigUnrecognizedKeysFmt, source, err)
	}
	return &cfg, nil
}

// decodeStrict re-decodes the TOML data with strict unknown-field rejection,
// catching keys that toml.Unmarshal silently ignores.
func decodeStrict(data []byte) error {
	var cfg Config
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(&cfg)
}
