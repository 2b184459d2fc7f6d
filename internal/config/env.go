package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces every environment variable read by the client.
const EnvPrefix = "ZCA_"

// parseEnv populates cfg from ZCA_-prefixed environment variables using the
// caarlos0/env library and the `env`/`envPrefix` tags on [StructuredConfig].
func parseEnv(cfg *StructuredConfig) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}
	return nil
}
