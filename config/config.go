package config

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/grovetools/xstatus/errors"
	"github.com/grovetools/xstatus/pkg/paths"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// Format identifies the encoding of a configuration file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor picks the decoder for a file by extension. Anything that is not
// .toml is treated as YAML.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Load reads and parses an xstatus configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	cfg, err := decode(data, FormatFor(path))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse config file").
			WithDetail("path", path)
	}

	if err := applyOverrides(cfg, path); err != nil {
		return nil, err
	}

	return finalize(cfg)
}

// LoadFromBytes parses configuration from a byte array
func LoadFromBytes(data []byte, format Format) (*Config, error) {
	cfg, err := decode(data, format)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse configuration")
	}
	return finalize(cfg)
}

// LoadDefault finds and loads the configuration file. When no file exists it
// returns the built-in defaults.
func LoadDefault() (*Config, error) {
	cfg, _, err := Resolve("", nil)
	return cfg, err
}

// Resolve loads the configuration from an explicit path, or searches for one.
// A missing explicit path is an error; a missing searched file is not. The
// returned path is empty when the defaults were used.
func Resolve(explicitPath string, logger *logrus.Entry) (*Config, string, error) {
	if logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		logger = logrus.NewEntry(l)
	}

	path := explicitPath
	if path == "" {
		found, err := FindConfigFile()
		if err != nil {
			logger.Debug("No configuration file found, using defaults")
			return Default(), "", nil
		}
		path = found
	}

	logger.WithField("path", path).Debug("Loading configuration")
	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}

	if logger.Logger.IsLevelEnabled(logrus.DebugLevel) {
		if data, err := yaml.Marshal(cfg); err == nil {
			logger.Debugf("Effective configuration:\n%s", string(data))
		}
	}

	return cfg, path, nil
}

// FindConfigFile returns the configuration file to use:
// 1. $XSTATUS_CONFIG
// 2. xstatus.yml, xstatus.yaml, xstatus.toml in the config directory
func FindConfigFile() (string, error) {
	if p := os.Getenv("XSTATUS_CONFIG"); p != "" {
		return p, nil
	}

	for _, candidate := range paths.ConfigCandidates() {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	return "", errors.ConfigNotFound(paths.ConfigDir()).WithDetail("searchPath", paths.ConfigDir())
}

// OverridePath returns the local override file that sits next to path.
func OverridePath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".override" + ext
}

func applyOverrides(cfg *Config, path string) error {
	overridePath := OverridePath(path)
	data, err := os.ReadFile(overridePath)
	if err != nil {
		// Overrides are optional.
		return nil
	}

	override, err := decode(data, FormatFor(overridePath))
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse override file").
			WithDetail("path", overridePath)
	}

	*cfg = *mergeConfigs(cfg, override)
	return nil
}

func finalize(cfg *Config) (*Config, error) {
	validator, err := NewSchemaValidator()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to create validator")
	}

	if err := validator.Validate(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "schema validation failed")
	}

	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// decode parses raw bytes without applying defaults or validation.
func decode(data []byte, format Format) (*Config, error) {
	expanded := []byte(expandEnvVars(string(data)))

	var cfg Config
	switch format {
	case FormatTOML:
		if err := toml.NewDecoder(bytes.NewReader(expanded)).Decode(&cfg); err != nil {
			return nil, err
		}
		// go-toml has no inline catch-all, so collect unknown tables by hand.
		var raw map[string]interface{}
		if err := toml.Unmarshal(expanded, &raw); err != nil {
			return nil, err
		}
		for key, value := range raw {
			if knownKeys[key] {
				continue
			}
			if cfg.Extensions == nil {
				cfg.Extensions = make(map[string]interface{})
			}
			cfg.Extensions[key] = value
		}
	default:
		if err := yaml.Unmarshal(expanded, &cfg); err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}

var knownKeys = map[string]bool{
	"interval":         true,
	"display":          true,
	"command_timeout":  true,
	"time_format":      true,
	"power_supply_dir": true,
	"batteries":        true,
	"mixer":            true,
	"backlight":        true,
}

// expandEnvVars replaces ${VAR} with environment variable values
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		varName := envVarRegex.FindStringSubmatch(match)[1]

		// Handle default values: ${VAR:-default}
		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]
		defaultValue := ""
		if len(parts) > 1 {
			defaultValue = parts[1]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		return defaultValue
	})
}
