// Package sqlite selects the SQLite driver for the API key database.
// The default build uses the pure Go modernc.org/sqlite driver; building
// with -tags cgo_sqlite (and CGO_ENABLED=1) switches to mattn/go-sqlite3.
// Use Open instead of sql.Open so the registered driver name matches the
// compiled-in implementation.
package sqlite

import "database/sql"

// Open opens a SQLite database with the compiled-in driver.
func Open(dataSourceName string) (*sql.DB, error) {
	return sql.Open(driverName, dataSourceName)
}

// DriverType identifies the underlying implementation: "purego" for
// modernc.org/sqlite, "cgo" for mattn/go-sqlite3.
func DriverType() string {
	return driverType
}

// IsCGO reports whether the CGO implementation is compiled in.
func IsCGO() bool {
	return driverType == "cgo"
}

// Info describes the compiled-in SQLite driver. The status endpoint
// reports it so operators can tell which build variant is running.
type Info struct {
	DriverName string `json:"driver_name"`
	DriverType string `json:"driver_type"`
	IsCGO      bool   `json:"is_cgo"`
	Package    string `json:"package"`
}

// GetInfo returns the compiled-in driver's description.
func GetInfo() Info {
	return Info{
		DriverName: driverName,
		DriverType: driverType,
		IsCGO:      IsCGO(),
		Package:    driverPackage,
	}
}
