package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}

func (c *Config) validateMatching() error {
	m := c.Matching
	for name, value := range map[string]int{
		"matching.title_weight":               m.TitleWeight,
		"matching.duration_weight":            m.DurationWeight,
		"matching.date_weight":                m.DateWeight,
		"matching.min_score":                  m.MinScore,
		"matching.auto_approve_score":         m.AutoApproveScore,
		"matching.duration_tolerance_seconds": m.DurationToleranceSeconds,
		"matching.date_tolerance_days":        m.DateToleranceDays,
		"matching.substring_guard":            m.SubstringGuard,
	} {
		if value < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	if m.AutoApproveScore < m.MinScore {
		return errors.New("matching.auto_approve_score must be at least matching.min_score")
	}
	maxScore := m.TitleWeight + m.DurationWeight + m.DateWeight
	if m.MinScore > maxScore {
		return fmt.Errorf("matching.min_score %d exceeds the maximum achievable score %d", m.MinScore, maxScore)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
