package config

import (
	"errors"
	"fmt"
	"net/mail"
	"slices"
)

// Validate checks every section and returns the failures joined, so a bad
// config reports all problems in one pass.
func (c *Config) Validate() error {
	return errors.Join(
		c.Server.validate(),
		c.Log.validate(),
		c.DocuSeal.validate(),
		c.SMTP.validate(),
		c.Notify.validate(),
		c.Telemetry.validate(),
	)
}

// validPort reports whether p is a usable TCP port.
func validPort(p int) bool {
	return p >= 1 && p <= 65535
}

// oneOf returns an error unless got is among allowed.
func oneOf(key, got string, allowed ...string) error {
	if slices.Contains(allowed, got) {
		return nil
	}
	return fmt.Errorf("%s must be one of: %v; got %q", key, allowed, got)
}

func (s *ServerConfig) validate() error {
	var errs []error

	if !validPort(s.Port) {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port))
	}
	if s.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be positive"))
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server.write_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	return errors.Join(
		oneOf("log.level", l.Level, "debug", "info", "warn", "error"),
		oneOf("log.format", l.Format, "json", "text"),
	)
}

// validate checks the provider client configuration. The API token is
// deliberately not required: the service starts without one (readiness
// reports the provider as degraded) so local development works against a
// stub provider.
func (cl *ClientConfig) validate() error {
	var errs []error

	if cl.BaseURL == "" {
		errs = append(errs, errors.New("docuseal.base_url must not be empty"))
	}
	if cl.AuthHeader == "" {
		errs = append(errs, errors.New("docuseal.auth_header must not be empty"))
	}
	if cl.Timeout <= 0 {
		errs = append(errs, errors.New("docuseal.timeout must be positive"))
	}
	if cl.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("docuseal.retry.max_attempts must be >= 1, got %d", cl.Retry.MaxAttempts))
	}
	if cl.Retry.Multiplier <= 0 {
		errs = append(errs, fmt.Errorf("docuseal.retry.multiplier must be positive, got %f", cl.Retry.Multiplier))
	}
	if cl.CircuitBreaker.MaxFailures < 1 {
		errs = append(errs, fmt.Errorf("docuseal.circuit_breaker.max_failures must be >= 1, got %d",
			cl.CircuitBreaker.MaxFailures))
	}
	if cl.RateLimit.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("docuseal.rate_limit.requests_per_second must not be negative, got %f",
			cl.RateLimit.RequestsPerSecond))
	}
	if cl.RateLimit.RequestsPerSecond > 0 && cl.RateLimit.BurstSize < 1 {
		errs = append(errs, fmt.Errorf("docuseal.rate_limit.burst_size must be >= 1 when rate limiting is enabled, got %d",
			cl.RateLimit.BurstSize))
	}

	return errors.Join(errs...)
}

func (s *SMTPConfig) validate() error {
	var errs []error

	if s.Host == "" {
		errs = append(errs, errors.New("smtp.host must not be empty"))
	}
	if !validPort(s.Port) {
		errs = append(errs, fmt.Errorf("smtp.port must be between 1 and 65535, got %d", s.Port))
	}
	if s.From == "" {
		errs = append(errs, errors.New("smtp.from must not be empty"))
	} else if _, err := mail.ParseAddress(s.From); err != nil {
		errs = append(errs, fmt.Errorf("smtp.from must be a valid email address, got %q", s.From))
	}

	return errors.Join(errs...)
}

func (n *NotifyConfig) validate() error {
	var errs []error

	if n.Workers < 1 {
		errs = append(errs, fmt.Errorf("notify.workers must be >= 1, got %d", n.Workers))
	}
	if n.QueueSize < 1 {
		errs = append(errs, fmt.Errorf("notify.queue_size must be >= 1, got %d", n.QueueSize))
	}
	if n.TaskTimeout <= 0 {
		errs = append(errs, errors.New("notify.task_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}

	errs := []error{oneOf("telemetry.exporter", t.Exporter, "stdout", "otlp")}

	if t.Exporter == "otlp" && t.Endpoint == "" {
		errs = append(errs, errors.New("telemetry.endpoint must not be empty when exporter is otlp"))
	}

	return errors.Join(errs...)
}
