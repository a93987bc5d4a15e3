package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateConversion(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateConversion() error {
	switch c.Conversion.Format {
	case "webp", "apng":
	default:
		return fmt.Errorf("conversion.format must be webp or apng, got %q", c.Conversion.Format)
	}
	if c.Conversion.FPS <= 0 {
		return errors.New("conversion.fps must be a positive integer")
	}
	if c.Conversion.Quality < 0 || c.Conversion.Quality > 100 {
		return errors.New("conversion.quality must be between 0 and 100")
	}
	if c.Conversion.Width < 0 || c.Conversion.Height < 0 {
		return errors.New("conversion.width and conversion.height must not be negative")
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	checks := map[string]int{
		"workflow.queue_poll_interval":  c.Workflow.QueuePollInterval,
		"workflow.error_retry_interval": c.Workflow.ErrorRetryInterval,
		"workflow.watch_settle_seconds": c.Workflow.WatchSettleSeconds,
		"notifications.request_timeout": c.Notifications.RequestTimeout,
		"encoder.timeout_seconds":       c.Encoder.TimeoutSeconds,
	}
	for name, value := range checks {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	return nil
}
