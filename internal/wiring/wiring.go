// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/provcache/internal/adapters/config"
	_ "go.trai.ch/provcache/internal/adapters/logger"
	_ "go.trai.ch/provcache/internal/adapters/storage"
	// Register app and engine nodes.
	_ "go.trai.ch/provcache/internal/app"
	_ "go.trai.ch/provcache/internal/engine/pkgconfig"
	_ "go.trai.ch/provcache/internal/engine/scancache"
)
