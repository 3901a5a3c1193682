package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("NIGHTSKY_TEST_HOST", "example.org")
	assert.Equal(t, "example.org", GetEnv("NIGHTSKY_TEST_HOST", "localhost"))
	assert.Equal(t, "localhost", GetEnv("NIGHTSKY_TEST_UNSET", "localhost"))

	t.Setenv("NIGHTSKY_TEST_EMPTY", "")
	assert.Equal(t, "", GetEnv("NIGHTSKY_TEST_EMPTY", "x"), "set but empty is still set")
}

func TestTypedEnv(t *testing.T) {
	t.Setenv("NIGHTSKY_TEST_INT", "42")
	t.Setenv("NIGHTSKY_TEST_FLOAT", "0.25")
	t.Setenv("NIGHTSKY_TEST_BOOL", "true")
	t.Setenv("NIGHTSKY_TEST_BAD", "lots")
	t.Setenv("NIGHTSKY_TEST_EMPTY", "")
	t.Setenv("NIGHTSKY_TEST_NAN", "NaN")
	t.Setenv("NIGHTSKY_TEST_INF", "+Inf")
	t.Setenv("NIGHTSKY_TEST_NEG_INF", "-infinity")

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"int", GetEnvInt("NIGHTSKY_TEST_INT", 1), 42},
		{"int unset", GetEnvInt("NIGHTSKY_TEST_UNSET", 7), 7},
		{"int bad", GetEnvInt("NIGHTSKY_TEST_BAD", 7), 7},
		{"int empty", GetEnvInt("NIGHTSKY_TEST_EMPTY", 7), 7},
		{"float", GetEnvFloat("NIGHTSKY_TEST_FLOAT", 1), 0.25},
		{"float bad", GetEnvFloat("NIGHTSKY_TEST_BAD", 1.5), 1.5},
		{"float NaN", GetEnvFloat("NIGHTSKY_TEST_NAN", 1.5), 1.5},
		{"float +Inf", GetEnvFloat("NIGHTSKY_TEST_INF", 1.5), 1.5},
		{"float -Inf", GetEnvFloat("NIGHTSKY_TEST_NEG_INF", 1.5), 1.5},
		{"bool", GetEnvBool("NIGHTSKY_TEST_BOOL", false), true},
		{"bool bad", GetEnvBool("NIGHTSKY_TEST_BAD", true), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}
