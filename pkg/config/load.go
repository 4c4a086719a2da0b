package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	errs "github.com/excalidocker/excalidocker/pkg/errors"
)

// EnvPrefix prefixes environment overrides, e.g. EXCALIDOCKER_FONT_SIZE.
const EnvPrefix = "EXCALIDOCKER"

var configExtensions = []string{".yaml", ".yml", ".toml"}

// Load reads the configuration at path on top of [Default].
//
// A missing file is an error only when required is set; otherwise the
// defaults (plus environment overrides) are returned and found is false.
func Load(path string, required bool) (cfg Config, found bool, err error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		found, err = readFile(v, path, required)
		if err != nil {
			return Config{}, false, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, found, errs.Wrap(errs.ErrCodeInvalidConfig, err, "failed to decode configuration")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, found, err
	}
	return cfg, found, nil
}

func readFile(v *viper.Viper, path string, required bool) (bool, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !isConfigExt(ext) {
		return false, errs.New(errs.ErrCodeInvalidExtension,
			"file '%s' has unsupported extension. File should be 'yaml', 'yml' or 'toml'", path)
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return false, nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return false, errs.Wrap(errs.ErrCodeFileNotFound, err, "configuration file '%s' not found", path)
		}
		return false, errs.Wrap(errs.ErrCodeFileRead, err, "failed to read configuration file '%s'", path)
	}

	v.SetConfigFile(path)
	v.SetConfigType(strings.TrimPrefix(ext, "."))
	if err := v.ReadInConfig(); err != nil {
		var parseErr viper.ConfigParseError
		if errors.As(err, &parseErr) {
			return false, errs.Wrap(errs.ErrCodeInvalidConfig, err, "configuration parsing issue in '%s'", path)
		}
		return false, errs.Wrap(errs.ErrCodeFileRead, err, "configuration file issue in '%s'", path)
	}
	return true, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("font.size", d.Font.Size)
	v.SetDefault("font.family", d.Font.Family)
	v.SetDefault("services.background_color", d.Services.BackgroundColor)
	v.SetDefault("services.fill", d.Services.Fill)
	v.SetDefault("services.edge", d.Services.Edge)
	v.SetDefault("ports.background_color", d.Ports.BackgroundColor)
	v.SetDefault("ports.fill", d.Ports.Fill)
	v.SetDefault("connections.visible", d.Connections.Visible)
	v.SetDefault("connections.edge", d.Connections.Edge)
	v.SetDefault("alignment.mode", d.Alignment.Mode)
}

func isConfigExt(ext string) bool {
	for _, e := range configExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
