// Package config provides process-level settings, frontend constants and the
// gameplay tuning loaded from YAML.
package config

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// NewLogger builds a process logger writing to w. LOG_LEVEL selects the
// level (debug, info, warn, error); unknown values fall back to info.
func NewLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// TuningFromEnv loads the tuning file named by TUNING_FILE, or the defaults
// when the variable is unset or empty.
func TuningFromEnv() (Tuning, error) {
	path := GetEnv("TUNING_FILE", "")
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
