package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

// StoreConfig points at the enrollment workbook.
type StoreConfig struct {
	Path  string `mapstructure:"path"`
	Sheet string `mapstructure:"sheet"`
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

type LogConfig struct {
	File string `mapstructure:"file"`
}

// BackupConfig controls workbook snapshots. Snapshots are encrypted at
// rest when EncryptionKey is set.
type BackupConfig struct {
	Dir           string `mapstructure:"dir"`
	EncryptionKey string `mapstructure:"encryption_key"`
}

type CategorySalary struct {
	Name   string `mapstructure:"name"`
	Amount int64  `mapstructure:"amount"`
}

// SalaryConfig is kept as a list because viper lower-cases map keys and
// category names are case sensitive.
type SalaryConfig struct {
	Categories []CategorySalary `mapstructure:"categories"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Store    StoreConfig    `mapstructure:"store"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Backup   BackupConfig   `mapstructure:"backup"`
	Salary   SalaryConfig   `mapstructure:"salary"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.mode", "release")
	v.SetDefault("store.path", "employee_data_with_web_access.xlsx")
	v.SetDefault("store.sheet", "Employee Data")
	v.SetDefault("database.path", "data/audit.db")
	v.SetDefault("backup.dir", "backups")
	v.SetDefault("backup.encryption_key", "")
}

// Load loads configuration from given file path (e.g. "config.yaml").
// If path is empty, it looks for an optional "config.yaml" in the current
// working directory and falls back to defaults when there is none.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	// environment overrides, e.g. EMP_SERVER_PORT=9000
	v.SetEnvPrefix("EMP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
