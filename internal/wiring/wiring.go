// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/rsym/internal/adapters/cas"
	_ "go.trai.ch/rsym/internal/adapters/config"
	_ "go.trai.ch/rsym/internal/adapters/filter"
	_ "go.trai.ch/rsym/internal/adapters/fs"
	_ "go.trai.ch/rsym/internal/adapters/logger"
	_ "go.trai.ch/rsym/internal/adapters/resdir"
	_ "go.trai.ch/rsym/internal/adapters/telemetry"
	_ "go.trai.ch/rsym/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/rsym/internal/app"
	_ "go.trai.ch/rsym/internal/engine/resolver"
)
