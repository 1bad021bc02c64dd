package config

import "os"

func Port() string {
	port, ok := os.LookupEnv("APP_PORT")
	if !ok {
		return ":8080"
	}
	return port
}

func LogFile() string {
	return os.Getenv("APP_LOG_FILE")
}
