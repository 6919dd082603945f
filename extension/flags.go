// flags.go defines constants for all CLI flag names.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "file-type" -> FlagFileType).

package extension

// Flag name constants for CLI commands.
const (
	// Boolean flags

	FlagLocal = "local" // Use local config scope
	FlagPick  = "pick"  // Choose interactively
	FlagRaw   = "raw"   // Output input unchanged

	// String flags

	FlagFile     = "file"   // File used for type detection
	FlagFileType = "type"   // File type, skipping detection
	FlagPlugin   = "plugin" // Force a plugin by identifier
	FlagSince    = "since"  // Age threshold (e.g., 7d)
	FlagTheme    = "theme"  // Theme name

	// Integer flags

	FlagLimit = "limit" // Limit number of results
	FlagWidth = "width" // Wrap width in columns
)
