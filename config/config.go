package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config carries everything that differs between deployments. The record
// store base URL in particular must always be injected: in development it
// points at the local mockstore, in production at the hosted store.
type Config struct {
	Addr           string
	RecordStoreURL string
	ImageHostURL   string
	SessionFile    string
	Debug          bool
}

// Load reads configuration from an optional inkwell.yaml in the working
// directory, overridden by INKWELL_* environment variables.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("addr", ":6835")
	v.SetDefault("record_store_url", "http://localhost:6836/api")
	v.SetDefault("image_host_url", "https://api.imgbb.com/1/upload")
	v.SetDefault("session_file", "./logged_user.json")
	v.SetDefault("debug", false)

	v.SetEnvPrefix("INKWELL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("inkwell")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	return Config{
		Addr:           v.GetString("addr"),
		RecordStoreURL: v.GetString("record_store_url"),
		ImageHostURL:   v.GetString("image_host_url"),
		SessionFile:    v.GetString("session_file"),
		Debug:          v.GetBool("debug"),
	}, nil
}
