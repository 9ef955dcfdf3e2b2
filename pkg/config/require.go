package config

import "fmt"

func MustNonEmpty(value, envName string) error {
	if value == "" {
		return fmt.Errorf("missing required env %s", envName)
	}
	return nil
}

func MustNonEmptyBytes(value []byte, envName string) error {
	if len(value) == 0 {
		return fmt.Errorf("missing required env %s", envName)
	}
	return nil
}

// Validate checks the settings the HTTP server cannot start without.
func (c Config) Validate() error {
	if err := MustNonEmpty(c.DatabaseURL, "DATABASE_URL"); err != nil {
		return err
	}
	return MustNonEmptyBytes(c.JWTSecret, "JWT_SECRET")
}
