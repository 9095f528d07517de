package actions

import (
	"fmt"

	"github.com/ethpandaops/devmetrics/internal/config"
)

// ShowConfig displays the current configuration
func ShowConfig(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Println(cfg.String())
	return nil
}
