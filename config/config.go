package config

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const defaultPath = "."

// Supported database drivers.
const (
	DriverSQLite          = "sqlite"
	DriverPostgres        = "postgres"
	DriverPostgresCluster = "postgres-cluster"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	Auth AuthConfig `json:"auth" yaml:"auth"`

	Database DatabaseConfig `json:"database" yaml:"database"`

	// Postgres is only read by the postgres-cluster driver.
	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`
}

// AuthConfig holds the credential hashing settings.
type AuthConfig struct {
	// PasswordSecret salts every digest. An empty secret disables hashing.
	PasswordSecret string `json:"passwordSecret" yaml:"passwordSecret"`
}

// DatabaseConfig selects the user store.
type DatabaseConfig struct {
	Driver      string `json:"driver" yaml:"driver" validate:"required,oneof=sqlite postgres postgres-cluster"`
	URL         string `json:"url" yaml:"url" validate:"required_unless=Driver postgres-cluster"`
	AutoMigrate bool   `json:"autoMigrate" yaml:"autoMigrate"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile == "" {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	return loadFile[T](koanfInstance, cfg, configFile)
}

// LoadFile loads a single yaml file and overlays environment variables.
func LoadFile[T any](path string) (*T, error) {
	return loadFile[T](koanf.New("."), new(T), path)
}

func loadFile[T any](koanfInstance *koanf.Koanf, cfg *T, configFile string) (*T, error) {
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s failed", configFile)
	}

	existingConfigMap := koanfInstance.Raw()

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Single-word variables such as ENV or HOME never address a config leaf.
			if !strings.Contains(k, "_") {
				return "", nil
			}

			// AUTH_PASSWORDSECRET -> auth.passwordSecret
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s failed", configFile)
	}

	return cfg, nil
}

// New loads the file named by AUTHCTL_CONFIG, or config.yaml from the working
// directory or one of the usual config dirs.
func New() (*Config, error) {
	return Load(os.Getenv("AUTHCTL_CONFIG"))
}

// Load reads and validates the config at path. An empty path searches for config.yaml.
func Load(path string) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	if path != "" {
		cfg, err = LoadFile[Config](path)
	} else {
		cfg, err = LoadWithEnv[Config]("config", "config", "../config", "../../config")
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the fields the store and hasher cannot work without.
// An empty password secret is legal.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}

	if c.Database.Driver == DriverPostgresCluster && c.Postgres == nil {
		return errors.New("invalid config: postgres section is required by the postgres-cluster driver")
	}

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
