package config

import (
	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"github.com/samber/oops"

	"github.com/openkcm/rs-cli/internal/constants"
)

var defaultConfig = map[string]any{
	"Application": map[string]string{"Name": constants.AppName},
	"Logger":      map[string]string{"Level": constants.LogLevelInfo, "Format": "text"},
	"ReportServer": map[string]any{
		"Auth": map[string]string{"Type": string(commoncfg.InsecureSecretType)},
	},
}

func LoadConfig(opts ...commoncfg.Option) (*Config, error) {
	cfg := &Config{}

	// If loadconfig is called with one of the default ones but different values
	// these are overridden as only the last one takes efect
	options := make([]commoncfg.Option, 0, 2)
	options = append(options,
		commoncfg.WithDefaults(defaultConfig),
		commoncfg.WithPaths(
			constants.DefaultConfigPath1,
			constants.DefaultConfigPath2,
			".",
		),
	)

	options = append(options, opts...)

	loader := commoncfg.NewLoader(
		cfg,
		options...,
	)

	err := loader.LoadConfig()
	if err != nil {
		return nil, oops.Wrapf(err, "failed to load config")
	}

	err = cfg.Validate()
	if err != nil {
		return nil, oops.Wrapf(err, "failed to validate config")
	}

	return cfg, nil
}
