// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"sitedeploy/pkg/common"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

const (
	ConfigFileName = "config.yaml"
	ConfigDirName  = "sitedeploy"
	// Older releases read a config file from the working directory
	LegacyConfigFileName = "sitedeploy.yaml"

	EnvPrefix = "SITEDEPLOY"
)

type AWSConfig struct {
	Region       string `mapstructure:"region" validate:"required"`
	Endpoint     string `mapstructure:"endpoint" validate:"omitempty,url"`
	UsePathStyle bool   `mapstructure:"use_path_style"`

	// Only ever sourced from the environment, see credentialEnv
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

type GCPConfig struct {
	Project         string `mapstructure:"project"`
	Location        string `mapstructure:"location" validate:"required"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

type Config struct {
	Provider common.Provider `mapstructure:"provider" validate:"required,oneof=aws gcp memory"`
	BuildDir string          `mapstructure:"build_dir" validate:"required"`
	// Zero means the deploy may run indefinitely
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0s"`

	AWS AWSConfig `mapstructure:"aws"`
	GCP GCPConfig `mapstructure:"gcp"`
}

// Default values for every known key. Registering all keys here is what lets
// viper's AutomaticEnv reach them during Unmarshal
var defaults = map[string]any{
	"provider":              string(common.AWS),
	"build_dir":             "src",
	"timeout":               "0s",
	"aws.region":            "us-east-1",
	"aws.endpoint":          "",
	"aws.use_path_style":    false,
	"aws.access_key_id":     "",
	"aws.secret_access_key": "",
	"gcp.project":           "",
	"gcp.location":          "US",
	"gcp.credentials_file":  "",
}

// Credential keys are bound to AWS_ID/AWS_SECRET first, then to the standard AWS names
var credentialEnv = map[string][]string{
	"aws.access_key_id":     {"AWS_ID", "AWS_ACCESS_KEY_ID"},
	"aws.secret_access_key": {"AWS_SECRET", "AWS_SECRET_ACCESS_KEY"},
}

func isSecretKey(key string) bool {
	_, ok := credentialEnv[key]
	return ok
}

func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting user home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", ConfigDirName)
	configPath := filepath.Join(configDir, ConfigFileName)

	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil
	}

	if _, err := os.Stat(LegacyConfigFileName); err == nil {
		if err := migrateConfig(LegacyConfigFileName, configPath); err == nil {
			return configPath, nil
		}
		return LegacyConfigFileName, nil
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("error creating config directory: %w", err)
	}

	return configPath, nil
}

func migrateConfig(sourcePath, destPath string) error {
	destDir := filepath.Dir(destPath)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("error reading source config file: %w", err)
	}

	if err := os.WriteFile(destPath, data, 0644); err != nil {
		return fmt.Errorf("error writing destination config file: %w", err)
	}

	return nil
}

// Lower-cases and trims provider names before they reach the Config struct
func providerDecodeHook() mapstructure.DecodeHookFuncType {
	providerType := reflect.TypeOf(common.Provider(""))
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != providerType {
			return data, nil
		}
		return common.ParseProvider(reflect.ValueOf(data).String()), nil
	}
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		providerDecodeHook(),
		mapstructure.StringToTimeDurationHookFunc(),
	)
}

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// Turns validator output into one readable line per failing field
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy '%s=%s' (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy '%s'", fe.Namespace(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}
