package config

import (
	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/ekhata-app/ekhata/pkg/logger"
)

var config *Config

// Config holds every configurable value. Only this struct may be used to
// read configuration; no direct env access elsewhere.
type Config struct {
	AppEnv   string `env:"APP_ENV,default=dev"`
	AppName  string `env:"APP_NAME,default=ekhata"`
	AppDebug bool   `env:"APP_DEBUG,default=false"`

	HTTPListenAddr string `env:"HTTP_LISTEN_ADDR,default=:8080"`

	// Path of the on-device sqlite file. ":memory:" works for tooling.
	DBPath string `env:"DB_PATH,default=ekhata.db"`

	PromNamespace string `env:"PROM_NAMESPACE,default=ekhata"`
	MetricsAddr   string `env:"METRICS_ADDR"`
	MetricsURI    string `env:"METRICS_URI,default=/metrics"`
}

func Load(path string) error {
	logger.Info("loading configs..", "path", path)
	c := &Config{}
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return errors.Wrap(err, "failed to load configuration file "+path)
		}
	}

	if _, err := env.UnmarshalFromEnviron(c); err != nil {
		return errors.Wrap(err, "failed to map env variables to Configuration object")
	}

	config = c
	return nil
}

func Get() *Config {
	if config == nil {
		logger.Panic("Config is not initialized")
	}
	return config
}
