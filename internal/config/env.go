// Package config provides shared configuration utilities.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
)

// ErrNotFinite is reported for float values that parse as NaN or an infinity.
var ErrNotFinite = errors.New("config: value is not a finite number")

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvInt is GetEnv for integers. Unparsable values are logged and
// replaced by fallback.
func GetEnvInt(key string, fallback int) int {
	return parseEnv(key, fallback, strconv.Atoi)
}

// GetEnvFloat is GetEnv for floats. NaN and infinities count as invalid.
func GetEnvFloat(key string, fallback float64) float64 {
	return parseEnv(key, fallback, func(s string) (float64, error) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, err
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: %q", ErrNotFinite, s)
		}
		return v, nil
	})
}

// GetEnvBool is GetEnv for booleans (1, t, true, 0, f, false, ...).
func GetEnvBool(key string, fallback bool) bool {
	return parseEnv(key, fallback, strconv.ParseBool)
}

func parseEnv[T any](key string, fallback T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	v, err := parse(raw)
	if err != nil {
		log.Warn("Ignoring invalid environment value", "key", key, "value", raw, "error", err)
		return fallback
	}
	return v
}
