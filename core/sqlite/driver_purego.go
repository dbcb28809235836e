//go:build !cgo_sqlite

// Default driver variant: pure Go, no CGO toolchain needed.
package sqlite

import (
	_ "modernc.org/sqlite" // registers "sqlite"
)

const (
	driverName    = "sqlite"
	driverType    = "purego"
	driverPackage = "modernc.org/sqlite"
)
