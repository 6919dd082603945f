// Package validate provides input validation for names and sizes that
// users type into lens.
//
// Validation happens at the boundary between user input and the plugin
// registry. The registry treats identifiers as opaque strings; the CLI,
// config and MCP layers call into this package first. Each function
// returns nil on success or an error wrapping one of the sentinels in
// errors.go.
//
// # Validation Functions
//
// PluginID, Theme and FileType check lower-case names.
// Content checks input size against the configured limit.
package validate
