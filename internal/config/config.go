package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds the configuration for the application.
type Config struct {
	Environment string `mapstructure:"environment"`
	Server      struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"server"`
	DB struct {
		Enable   bool   `mapstructure:"enable"`
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
		SSLMode  string `mapstructure:"sslmode"`
	} `mapstructure:"db"`
	Notifier struct {
		GatewayURL string `mapstructure:"gateway_url"`
		FromEmail  string `mapstructure:"from_email"`
	} `mapstructure:"notifier"`
	Recommender struct {
		SidecarURL string `mapstructure:"sidecar_url"`
	} `mapstructure:"recommender"`
	Monitor struct {
		Interval       time.Duration `mapstructure:"interval"`
		ProcurementBox string        `mapstructure:"procurement_inbox"`
		LegalBox       string        `mapstructure:"legal_inbox"`
	} `mapstructure:"monitor"`
}

// LoadConfig loads the configuration from a file and the environment.
func LoadConfig(path string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if path != "" {
		viper.SetConfigFile(path)
	}
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("environment", "dev")
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("db.sslmode", "disable")
	viper.SetDefault("monitor.interval", time.Hour)
	viper.SetDefault("monitor.procurement_inbox", "procurement@fleetflow.com")
	viper.SetDefault("monitor.legal_inbox", "legal@fleetflow.com")
	viper.SetDefault("notifier.from_email", "noreply@fleetflow.com")

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env vars apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
