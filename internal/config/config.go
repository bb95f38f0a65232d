package config

import (
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Logger LoggerConfig `mapstructure:"logger"`
	Engine EngineConfig `mapstructure:"engine"`
	Alerts AlertsConfig `mapstructure:"alerts"`
	DB     DBConfig     `mapstructure:"db"`
}

var configFile = "./configs/config.yaml"

func Get() *Config {

	if value, _ := os.LookupEnv("MODE"); value == "test" {
		configFile = "../configs/config.yaml"
	}
	if value, ok := os.LookupEnv("CONFIG_PATH"); ok {
		configFile = value
	}

	config, err := loadConfig(configFile)
	if err != nil {
		log.Fatal(err)
	}

	return config
}

func loadConfig(file string) (*Config, error) {

	viper.SetConfigFile(file)
	viper.AutomaticEnv()

	setDefaults()

	err := bindEnvironmentVariables()
	if err != nil {
		return nil, err
	}

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file, %s", err)
	}

	config := Config{}
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	err = config.validate()
	if err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("engine.analysis_interval", "3h")
	viper.SetDefault("engine.forecast_days", 30)
	viper.SetDefault("engine.snapshot_retention_days", 90)
	viper.SetDefault("alerts.min_match_threshold", 70)
	viper.SetDefault("alerts.max_notifications_per_second", 1)
}

func bindEnvironmentVariables() error {
	var errs []error

	engine, alerts, db, logger := EngineConfig{}, AlertsConfig{}, DBConfig{}, LoggerConfig{}

	if err := engine.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("EngineConfig: %w", err))
	}

	if err := alerts.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("AlertsConfig: %w", err))
	}

	if err := db.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("DBConfig: %w", err))
	}

	if err := logger.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config Config) validate() error {
	var errs []error

	if err := config.Engine.validate(); err != nil {
		errs = append(errs, fmt.Errorf("EngineConfig: %w", err))
	}

	if err := config.Alerts.validate(); err != nil {
		errs = append(errs, fmt.Errorf("AlertsConfig: %w", err))
	}

	if err := config.DB.validate(); err != nil {
		errs = append(errs, fmt.Errorf("DBConfig: %w", err))
	}

	if err := config.Logger.validate(); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}
