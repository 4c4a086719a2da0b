package config

import (
	"bytes"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	errs "github.com/excalidocker/excalidocker/pkg/errors"
)

// Output formats accepted by [Encode].
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Encode renders cfg as YAML or TOML, as printed by --show-config.
func Encode(cfg Config, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch strings.ToLower(format) {
	case FormatYAML, "yml", "":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInternal, err, "failed to encode configuration")
		}
		if err := enc.Close(); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInternal, err, "failed to encode configuration")
		}
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInternal, err, "failed to encode configuration")
		}
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unknown configuration format %q (want yaml or toml)", format)
	}
	return buf.Bytes(), nil
}
