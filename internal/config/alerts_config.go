package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type AlertsConfig struct {
	MinMatchThreshold         float64 `mapstructure:"min_match_threshold"`
	MaxNotificationsPerSecond float32 `mapstructure:"max_notifications_per_second"`
}

func (config AlertsConfig) validate() error {
	var errs []error

	if config.MinMatchThreshold < 0 || config.MinMatchThreshold > 100 {
		errs = append(errs, fmt.Errorf("min_match_threshold must be within [0, 100]"))
	}
	if config.MaxNotificationsPerSecond <= 0 {
		errs = append(errs, fmt.Errorf("max_notifications_per_second must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config AlertsConfig) bindEnvironmentVariables() error {

	err := viper.BindEnv("alerts.min_match_threshold", "MIN_MATCH_THRESHOLD")
	if err != nil {
		return err
	}

	return viper.BindEnv("alerts.max_notifications_per_second", "MAX_NOTIFICATIONS_PER_SECOND")
}
