package git

import (
	"strings"

	"github.com/reconquest/karma-go"

	"github.com/Felix14-v2/fastback/pkg/constants"
)

// WorldConfig is the per-world configuration stored in git config.
type WorldConfig struct {
	WorldID               string
	LocalRetentionPolicy  string
	RemoteRetentionPolicy string
}

// GetConfig returns the value of key, or an empty string when it is unset.
func (repository *Repository) GetConfig(key string) (string, error) {
	stdout, _, err := repository.git(
		`config`, `--default`, ``, `--get`, key,
	).Output()
	if err != nil {
		return "", karma.
			Describe("repository", repository.Path).
			Describe("key", key).
			Format(
				err,
				"unable to read git config",
			)
	}

	return strings.TrimSpace(stdout), nil
}

func (repository *Repository) SetConfig(key string, value string) error {
	err := repository.git(`config`, key, value).Run()
	if err != nil {
		return karma.
			Describe("repository", repository.Path).
			Describe("key", key).
			Describe("value", value).
			Format(
				err,
				"unable to write git config",
			)
	}

	return nil
}

func (repository *Repository) LoadWorldConfig() (WorldConfig, error) {
	var config WorldConfig

	for _, field := range []struct {
		key   string
		value *string
	}{
		{constants.WorldID, &config.WorldID},
		{constants.LocalRetentionPolicy, &config.LocalRetentionPolicy},
		{constants.RemoteRetentionPolicy, &config.RemoteRetentionPolicy},
	} {
		value, err := repository.GetConfig(field.key)
		if err != nil {
			return WorldConfig{}, err
		}

		*field.value = value
	}

	if config.WorldID == "" {
		return WorldConfig{}, karma.
			Describe("repository", repository.Path).
			Describe("key", constants.WorldID).
			Reason(
				"world id is not set, repository is not a world backup",
			)
	}

	return config, nil
}
