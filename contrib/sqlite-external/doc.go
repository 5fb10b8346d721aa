// Package sqliteexternal provides optional external SQLite drivers.
//
// This package is part of the main github.com/FocuswithJustin/Silversmith
// module and provides a CGO-based SQLite driver for reading large
// annotated corpora faster.
//
// # CGO SQLite Driver
//
// To use the CGO driver (github.com/mattn/go-sqlite3):
//
//	import _ "github.com/FocuswithJustin/Silversmith/contrib/sqlite-external"
//
// Build with:
//
//	CGO_ENABLED=1 go build -tags cgo_sqlite
//
// # Default Pure Go Driver
//
// By default, Silversmith uses a pure Go SQLite implementation that
// requires no CGO. See github.com/FocuswithJustin/Silversmith/core/sqlite
// for details.
//
// # When to Use
//
// Use this package when:
//   - Corpus reads dominate build time (2-5x faster for large databases)
//   - You need specific SQLite extensions
//   - You already have CGO in your build pipeline
//
// Use the default pure Go driver when:
//   - Portability is important
//   - Cross-compilation is required
//   - You want simpler deployment (single binary)
package sqliteexternal
