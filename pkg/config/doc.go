// Package config loads environment-based configuration into tagged structs.
//
// It combines godotenv for local development (.env files) with caarlos0/env
// for struct parsing, so every service reads its configuration the same way:
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
// Configuration structs declare their environment binding with `env:` tags
// and optional `envDefault:` fallbacks; required values use `env:"NAME,required"`.
package config
