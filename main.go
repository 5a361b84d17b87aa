package main

import (
	"fmt"
	"os"

	"github.com/deploymenttheory/go-addsum/cmd"
	"github.com/deploymenttheory/go-addsum/internal/config"
	"github.com/deploymenttheory/go-addsum/internal/logger"
)

func main() {
	// Get app configuration file from environment if specified
	configFile := os.Getenv("ADDSUM_CONFIG")

	// 1. Initialize application configuration
	if err := config.Initialize(configFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize logging based on application configuration
	if err := initLogging(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}

	logger.LogInfo("Application started", map[string]interface{}{
		"version":     cmd.Version,
		"config_file": config.ConfigFile,
	})

	// 3. Run the command, errors are already reported on stderr
	err := cmd.Execute()

	// Ensure logs are flushed before exit
	_ = logger.Sync()

	if err != nil {
		os.Exit(1)
	}
}

// initLogging initializes the logger based on configuration settings
func initLogging() error {
	logConfig := logger.DefaultConfig()
	logConfig.Debug = config.Instance.Debug
	logConfig.LogFile = config.Instance.LogFile
	if config.Instance.LogFormat != "" {
		logConfig.LogFormat = config.Instance.LogFormat
	}

	return logger.InitLogger(logConfig)
}
