// Package module holds the module contract used for wiring and typed port lookups
package module

import "supercut/internal/modkit"

// Module is modkit.Module, aliased so callers doing port lookups need a single import
type Module = modkit.Module
