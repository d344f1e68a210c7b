// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/nudge/internal/adapters/config"
	_ "go.trai.ch/nudge/internal/adapters/logger"
	_ "go.trai.ch/nudge/internal/adapters/sound"
	_ "go.trai.ch/nudge/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/nudge/internal/app"
)
