// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the process environment. Worker schedules use
// per-kind prefixes (WORKERS_EVENTS_INTERVAL, WORKERS_MEMBERS_ENABLED, ...), see
// the envPrefix tags on [Workers].
func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}
	return nil
}
