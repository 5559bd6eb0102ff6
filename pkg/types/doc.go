// Package types defines the configuration, record types, and standard errors
// shared by the scribe artifact manager, its backup store, integrity checker,
// and backup catalog.
package types
