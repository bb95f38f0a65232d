package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type EngineConfig struct {
	VocabularyFile        string        `mapstructure:"vocabulary_file"`
	AnalysisInterval      time.Duration `mapstructure:"analysis_interval"`
	ForecastDays          int           `mapstructure:"forecast_days"`
	SnapshotRetentionDays int           `mapstructure:"snapshot_retention_days"`
}

func (config EngineConfig) validate() error {
	var errs []error

	if config.AnalysisInterval <= 0 {
		errs = append(errs, fmt.Errorf("analysis_interval must be positive"))
	}
	if config.ForecastDays <= 0 {
		errs = append(errs, fmt.Errorf("forecast_days must be positive"))
	}
	if config.SnapshotRetentionDays <= 0 {
		errs = append(errs, fmt.Errorf("snapshot_retention_days must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config EngineConfig) bindEnvironmentVariables() error {

	err := viper.BindEnv("engine.vocabulary_file", "VOCABULARY_FILE")
	if err != nil {
		return err
	}

	err = viper.BindEnv("engine.analysis_interval", "ANALYSIS_INTERVAL")
	if err != nil {
		return err
	}

	err = viper.BindEnv("engine.forecast_days", "FORECAST_DAYS")
	if err != nil {
		return err
	}

	return viper.BindEnv("engine.snapshot_retention_days", "SNAPSHOT_RETENTION_DAYS")
}
