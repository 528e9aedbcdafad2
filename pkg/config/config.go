// Package config loads svn-backup settings from an optional config file and
// SVN_BACKUP_* environment variables.
package config

import (
	"os"

	"github.com/gentoomaniac/svn-backup/pkg/dump"
	"github.com/gentoomaniac/svn-backup/pkg/rotate"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "SVN_BACKUP"
	EnvConfig  = EnvPrefix + "_CONFIG"
	configName = "svn-backup"
)

type Config struct {
	Root       string `mapstructure:"root"`
	Link       string `mapstructure:"link"`
	DateLayout string `mapstructure:"date_layout"`
	Marker     string `mapstructure:"marker"`
	Delimiter  string `mapstructure:"delimiter"`
	Separator  string `mapstructure:"separator"`
	Journal    string `mapstructure:"journal"`

	// File is the config file used, empty when running on defaults.
	File string `mapstructure:"-"`
}

func (c *Config) Layout() dump.Layout {
	return dump.Layout{
		Marker:         c.Marker,
		Delimiter:      c.Delimiter,
		RangeSeparator: c.Separator,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("root", "/home/backups/svn")
	v.SetDefault("link", rotate.DefaultLink)
	v.SetDefault("date_layout", rotate.DefaultDateLayout)
	v.SetDefault("marker", dump.DefaultMarker)
	v.SetDefault("delimiter", dump.DefaultDelimiter)
	v.SetDefault("separator", dump.DefaultRangeSeparator)
	v.SetDefault("journal", "")
}

// Load reads the config file named by SVN_BACKUP_CONFIG, or the first
// svn-backup.{yaml,toml,json} found in the working directory,
// $HOME/.svn-backup or /etc/svn-backup. A missing file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path := os.Getenv(EnvConfig); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.svn-backup")
		v.AddConfigPath("/etc/svn-backup")
	}
	return load(v)
}

// LoadFile reads path, which must exist.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	var c Config
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "reading config")
		}
	} else {
		c.File = v.ConfigFileUsed()
	}

	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	if err := c.Layout().Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid dump name layout")
	}
	return &c, nil
}
