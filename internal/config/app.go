// Package config reads the handful of environment knobs the server cares
// about. Game parameters (grid size, mine count, safe start) are not config:
// they arrive with each new-game request.
package config

import "os"

func Addr() string {
	if addr, ok := os.LookupEnv("APP_ADDR"); ok {
		return addr
	}
	return ":8080"
}

// LogFile returns the rotating log file path, or "" to log to stderr only.
func LogFile() string {
	return os.Getenv("APP_LOG_FILE")
}

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}
