// Package config loads tpm2-dict-setup settings from the environment.
package config

import (
	"github.com/spf13/viper"

	"github.com/dirlock/tpm2-dict-setup/internal/tpm"
)

// TCTIEnv overrides the TPM channel, in tpm2-tss TCTI syntax
const TCTIEnv = "TCTI"

// Config holds settings read once at startup
type Config struct {
	TCTI string `mapstructure:"tcti"`
}

// Load reads the environment. An unset or empty TCTI selects
// tpm.DefaultTCTI.
func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("tcti", tpm.DefaultTCTI)
	if err := v.BindEnv("tcti", TCTIEnv); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
