// Package sqlite provides a SQLite-backed food dataset.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. The database holds a single foods
// table populated by "ration dataset import" from a JSON dataset; searches
// scan it in import order.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory.
//
// # Data Location
//
// By default, the database is stored at ~/.ration/data/foods.db
package sqlite
