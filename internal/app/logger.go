package app

import (
	"fmt"

	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/pkg/logger"
)

// ConfigureLogging initialises the global logger from configuration.
func ConfigureLogging(level string) error {
	if err := logger.Init(level); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	return nil
}
