package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/kovetskiy/ko"
	"github.com/reconquest/karma-go"
)

type Config struct {
	Repository string `toml:"repository" default:"$HOME/.fastback" required:"true"`

	Git struct {
		Binary string `toml:"binary" default:"git"`
		Remote string `toml:"remote" default:"origin"`
	} `toml:"git"`

	Locale   string `toml:"locale" default:"en-US"`
	LogLevel string `toml:"log_level" default:"info"`

	Schedule struct {
		Prune  string `toml:"prune" default:"@hourly"`
		Remote bool   `toml:"remote"`
	} `toml:"schedule"`
}

func LoadConfig(path string) (*Config, error) {
	config := &Config{}
	err := ko.Load(path, config, ko.RequireFile(false))
	if err != nil {
		return nil, err
	}

	if strings.HasPrefix(config.Repository, "$HOME") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, karma.Format(
				err,
				"unable to retrieve home directory to use as default repository location",
			)
		}

		config.Repository = filepath.Join(
			home,
			strings.TrimPrefix(config.Repository, "$HOME"),
		)
	}

	return config, nil
}
