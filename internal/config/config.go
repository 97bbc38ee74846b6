// Package config holds the analysis configuration: chip resource limits and
// warning toggles. Values come from defaults, an optional ic10.toml project
// file, and LSP workspace/didChangeConfiguration payloads, merged in that
// order.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Warnings toggles suppressible diagnostics.
type Warnings struct {
	// OverlineComment gates per-line warnings for lines past max_lines.
	OverlineComment bool `toml:"overline_comment" json:"overline_comment"`
	// OvercolumnComment gates per-line warnings for lines past max_columns.
	OvercolumnComment bool `toml:"overcolumn_comment" json:"overcolumn_comment"`
	// AbsoluteJump gates the lint for branch targets given as line numbers.
	AbsoluteJump bool `toml:"absolute_jump" json:"absolute_jump"`
}

// Config is one immutable configuration snapshot. Limits are inclusive
// bounds on 1-based counts: MaxLines 128 permits line indices 0..127.
type Config struct {
	MaxLines   int      `toml:"max_lines" json:"max_lines"`
	MaxColumns int      `toml:"max_columns" json:"max_columns"`
	Warnings   Warnings `toml:"warnings" json:"warnings"`
}

// Default returns the stock chip limits.
func Default() Config {
	return Config{
		MaxLines:   128,
		MaxColumns: 52,
		Warnings: Warnings{
			OverlineComment:   true,
			OvercolumnComment: true,
			AbsoluteJump:      true,
		},
	}
}

// Validate rejects non-positive limits.
func (c Config) Validate() error {
	if c.MaxLines < 1 {
		return fmt.Errorf("max_lines must be >= 1, got %d", c.MaxLines)
	}
	if c.MaxColumns < 1 {
		return fmt.Errorf("max_columns must be >= 1, got %d", c.MaxColumns)
	}
	return nil
}

// LoadFile reads an ic10.toml and merges it over the defaults. A missing
// file is not an error: the defaults are returned unchanged.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("%s: unrecognized option %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// settingsPayload mirrors the shape clients send in didChangeConfiguration.
// Pointer fields distinguish "absent" from zero values.
type settingsPayload struct {
	MaxLines   *int `json:"max_lines"`
	MaxColumns *int `json:"max_columns"`
	Warnings   struct {
		OverlineComment   *bool `json:"overline_comment"`
		OvercolumnComment *bool `json:"overcolumn_comment"`
		AbsoluteJump      *bool `json:"absolute_jump"`
	} `json:"warnings"`
}

// ApplyJSON merges recognized options from a settings payload onto c and
// returns the result. Unknown keys and malformed payloads leave c unchanged.
func (c Config) ApplyJSON(raw json.RawMessage) Config {
	if len(raw) == 0 {
		return c
	}
	var settings settingsPayload
	if err := json.Unmarshal(raw, &settings); err != nil {
		return c
	}
	if settings.MaxLines != nil && *settings.MaxLines >= 1 {
		c.MaxLines = *settings.MaxLines
	}
	if settings.MaxColumns != nil && *settings.MaxColumns >= 1 {
		c.MaxColumns = *settings.MaxColumns
	}
	if settings.Warnings.OverlineComment != nil {
		c.Warnings.OverlineComment = *settings.Warnings.OverlineComment
	}
	if settings.Warnings.OvercolumnComment != nil {
		c.Warnings.OvercolumnComment = *settings.Warnings.OvercolumnComment
	}
	if settings.Warnings.AbsoluteJump != nil {
		c.Warnings.AbsoluteJump = *settings.Warnings.AbsoluteJump
	}
	return c
}
