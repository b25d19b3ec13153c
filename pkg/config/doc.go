// Package config loads application configuration from environment variables
// into tagged structs, reading an optional .env file first.
//
// It is a thin composition of github.com/joho/godotenv and
// github.com/caarlos0/env/v11:
//
//	type AppConfig struct {
//		Name string `env:"APP_NAME" envDefault:"linkbio"`
//		Env  string `env:"APP_ENV" envDefault:"production"`
//	}
//
//	var cfg AppConfig
//	config.MustLoad(&cfg)
//
// Parse failures are wrapped with ErrParsingConfig and can be inspected with
// errors.Is.
package config
