// Package server holds the HTTP server configuration.
//
// The actual Fiber application is assembled in the start command; this package
// only defines the configuration section so core/config can compose it.
package server
