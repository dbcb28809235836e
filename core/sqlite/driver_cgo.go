//go:build cgo_sqlite

// mattn/go-sqlite3 variant, selected by the cgo_sqlite build tag.
// Needs CGO_ENABLED=1: go build -tags cgo_sqlite
package sqlite

import (
	_ "github.com/mattn/go-sqlite3" // registers "sqlite3"
)

const (
	driverName    = "sqlite3"
	driverType    = "cgo"
	driverPackage = "github.com/mattn/go-sqlite3"
)
