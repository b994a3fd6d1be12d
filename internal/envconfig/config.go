package envconfig

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/born-ml/posemachine/internal/logutil"
)

// Var returns an environment variable stripped of leading and trailing quotes or spaces.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// LogLevel returns the log level for the application.
// Values are 0 or false INFO (Default), 1 or true DEBUG, 2 TRACE.
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("CPM_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}
	if level < logutil.LevelTrace {
		level = logutil.LevelTrace
	}
	return level
}

// Uint returns a function that reads key as an unsigned integer,
// falling back to defaultValue when unset or invalid.
func Uint(key string, defaultValue uint) func() uint {
	return func() uint {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseUint(s, 10, 64); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return uint(n)
			}
		}
		return defaultValue
	}
}

var (
	// NumThreads sets the number of CPU backend workers. Configured via CPM_NUM_THREADS.
	NumThreads = Uint("CPM_NUM_THREADS", uint(runtime.NumCPU()))
	// MinChunk sets the minimum work items handed to one worker. Configured via CPM_MIN_CHUNK.
	MinChunk = Uint("CPM_MIN_CHUNK", 1)
)

type EnvVar struct {
	Name        string
	Value       any
	Description string
}

func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"CPM_DEBUG":       {"CPM_DEBUG", LogLevel(), "Show additional debug information (e.g. CPM_DEBUG=1, CPM_DEBUG=2 for trace)"},
		"CPM_NUM_THREADS": {"CPM_NUM_THREADS", NumThreads(), "Number of CPU backend workers (default number of CPUs)"},
		"CPM_MIN_CHUNK":   {"CPM_MIN_CHUNK", MinChunk(), "Minimum work items per CPU worker (default 1)"},
	}
}

func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}
