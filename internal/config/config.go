// internal/config/config.go
package config

import (
	"strings"

	"github.com/spf13/viper"
)

const defaultAPIURL = "http://localhost:3000"

type Config struct {
	ListenAddr string `mapstructure:"listen_addr"`
	Server     struct {
		// Header carrying the inbound request ID. Empty means X-Request-ID.
		RequestIDHeader string `mapstructure:"request_id_header"`
	} `mapstructure:"server"`
	API struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"api"`
	Session struct {
		// Path of the sqlite file backing the token store. Ignored when
		// database.url is set.
		Path string `mapstructure:"path"`
	} `mapstructure:"session"`
	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`
	Cookie struct {
		Secure bool `mapstructure:"secure"`
	} `mapstructure:"cookie"`
	Cors struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"cors"`
}

func Load() Config {
	viper.SetDefault("listen_addr", "127.0.0.1:8080")
	viper.SetDefault("api.url", defaultAPIURL)
	viper.SetDefault("session.path", "data/sessions.db")
	viper.SetDefault("cookie.secure", false)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	_ = viper.ReadInConfig()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// explicit bindings
	_ = viper.BindEnv("listen_addr", "LISTEN_ADDR")
	_ = viper.BindEnv("api.url", "API_URL")
	_ = viper.BindEnv("session.path", "SESSION_DB")
	_ = viper.BindEnv("database.url", "DATABASE_URL")
	_ = viper.BindEnv("cookie.secure", "COOKIE_SECURE")

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		panic("config error: " + err.Error())
	}
	if c.API.URL == "" {
		c.API.URL = defaultAPIURL
	}
	return c
}
