package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "STUDYTRACK"

// Default values applied before the config file and environment.
const (
	DefaultDatabaseURL = "sqlite://studytrack.db"
	DefaultLogLevel    = "warn"
	DefaultLogFormat   = "text"
	DefaultCourseWeeks = 24
	defaultConfigName  = "studytrack"
	defaultConfigType  = "yaml"
	userConfigDirName  = "studytrack"
)

// Load reads configuration from environment variables and optionally a
// config file. Environment variables take precedence over the file.
//
// When configPath is empty, studytrack.yaml is searched for in the working
// directory and in the user config directory; a missing file is not an error.
// An explicit configPath must exist.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("database.url", DefaultDatabaseURL)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
	v.SetDefault("study.default_course_weeks", DefaultCourseWeeks)

	v.SetConfigType(defaultConfigType)
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(defaultConfigName)
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, userConfigDirName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindEnvs := []string{
		"database.url",
		"log.level",
		"log.format",
		"study.default_course_weeks",
	}
	for _, key := range bindEnvs {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
