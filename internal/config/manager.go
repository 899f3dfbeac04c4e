// File: internal/config/manager.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"sitedeploy/pkg/common"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const maskedValue = "********"

// Validation rules for keys that may be written to the config file
var settableKeys = map[string]string{
	"provider":             "required,oneof=aws gcp memory",
	"build_dir":            "required",
	"timeout":              "gte=0s",
	"aws.region":           "required",
	"aws.endpoint":         "omitempty,url",
	"aws.use_path_style":   "",
	"gcp.project":          "",
	"gcp.location":         "required",
	"gcp.credentials_file": "",
}

// ConfigManager layers the config file, the environment and bound CLI flags
// through viper. Only file-sourced keys are ever written back to disk
type ConfigManager struct {
	v        *viper.Viper
	path     string
	validate *validator.Validate
}

// Creates a manager backed by the per-user config file
func NewConfigManager() (*ConfigManager, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return NewConfigManagerAt(path)
}

// Creates a manager backed by the config file at path. The file does not need to exist
func NewConfigManagerAt(path string) (*ConfigManager, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, envNames := range credentialEnv {
		bindArgs := append([]string{key}, envNames...)
		if err := v.BindEnv(bindArgs...); err != nil {
			return nil, fmt.Errorf("error binding environment for %s: %w", key, err)
		}
	}

	m := &ConfigManager{
		v:        v,
		path:     path,
		validate: newValidator(),
	}
	if err := m.reload(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *ConfigManager) Path() string {
	return m.path
}

func (m *ConfigManager) reload() error {
	if _, err := os.Stat(m.path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := m.v.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// Lets a changed CLI flag take precedence over file and environment values for key
func (m *ConfigManager) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("no flag to bind for config key '%s'", key)
	}
	return m.v.BindPFlag(key, flag)
}

// Decodes and validates the merged configuration
func (m *ConfigManager) LoadConfig() (*Config, error) {
	var cfg Config
	if err := m.v.Unmarshal(&cfg, viper.DecodeHook(decodeHook())); err != nil {
		return nil, fmt.Errorf("error decoding configuration: %w", err)
	}

	if err := m.validate.Struct(&cfg); err != nil {
		return nil, formatValidationError(err)
	}

	return &cfg, nil
}

func (m *ConfigManager) SetValue(key, value string) error {
	if isSecretKey(key) {
		return fmt.Errorf("'%s' is read from the environment only (%s)", key, strings.Join(credentialEnv[key], " or "))
	}
	rule, ok := settableKeys[key]
	if !ok {
		return fmt.Errorf("unknown config key: %s. Known keys: %s", key, strings.Join(KnownKeys(), ", "))
	}

	parsed, err := parseValue(key, value)
	if err != nil {
		return err
	}
	if rule != "" {
		if err := m.validate.Var(parsed, rule); err != nil {
			return fmt.Errorf("invalid value '%s' for %s (must satisfy '%s')", value, key, rule)
		}
	}

	fileSettings, err := m.readFile()
	if err != nil {
		return err
	}
	setNested(fileSettings, key, persistable(parsed))

	if err := m.writeFile(fileSettings); err != nil {
		return err
	}
	return m.reload()
}

// Returns the effective value for key from any source. Secrets are masked
func (m *ConfigManager) GetValue(key string) (any, bool) {
	if _, known := defaults[key]; !known {
		return nil, false
	}
	value := m.v.Get(key)
	if isSecretKey(key) {
		return maskSecret(value), true
	}
	return value, true
}

// Removes key from the config file. Reports false when the file did not set it
func (m *ConfigManager) DeleteValue(key string) (bool, error) {
	if _, known := defaults[key]; !known {
		return false, fmt.Errorf("unknown config key: %s", key)
	}

	fileSettings, err := m.readFile()
	if err != nil {
		return false, err
	}
	if !deleteNested(fileSettings, key) {
		return false, nil
	}

	if err := m.writeFile(fileSettings); err != nil {
		return false, err
	}

	// ReadInConfig replaces viper's view of the file wholesale
	if err := m.reload(); err != nil {
		return false, err
	}
	return true, nil
}

// Returns the merged settings as a nested map, with secrets masked
func (m *ConfigManager) GetAllSettings() map[string]any {
	settings := m.v.AllSettings()
	for key := range credentialEnv {
		parts := strings.Split(key, ".")
		section, ok := settings[parts[0]].(map[string]any)
		if !ok {
			continue
		}
		if v, ok := section[parts[1]]; ok {
			section[parts[1]] = maskSecret(v)
		}
	}
	return settings
}

// Returns the sorted list of keys understood by the config subcommands
func KnownKeys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *ConfigManager) readFile() (map[string]any, error) {
	data, err := os.ReadFile(m.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	settings := map[string]any{}
	if len(data) == 0 {
		return settings, nil
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	return settings, nil
}

func (m *ConfigManager) writeFile(settings map[string]any) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

func parseValue(key, value string) (any, error) {
	switch key {
	case "provider":
		return string(common.ParseProvider(value)), nil
	case "timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return nil, fmt.Errorf("invalid duration for %s: %w", key, err)
		}
		return d, nil
	case "aws.use_path_style":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid boolean for %s: %w", key, err)
		}
		return b, nil
	default:
		return value, nil
	}
}

// Durations are stored in their string form so the file stays hand-editable
func persistable(value any) any {
	if d, ok := value.(time.Duration); ok {
		return d.String()
	}
	return value
}

func setNested(settings map[string]any, key string, value any) {
	parts := strings.Split(key, ".")
	current := settings
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

func deleteNested(settings map[string]any, key string) bool {
	parts := strings.Split(key, ".")
	current := settings
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			return false
		}
		current = next
	}

	last := parts[len(parts)-1]
	if _, ok := current[last]; !ok {
		return false
	}
	delete(current, last)

	// Drop sections left empty so the file does not accumulate "aws: {}"
	if len(parts) > 1 && len(current) == 0 {
		delete(settings, parts[0])
	}
	return true
}

func maskSecret(value any) any {
	if s, ok := value.(string); ok && s != "" {
		return maskedValue
	}
	return value
}
