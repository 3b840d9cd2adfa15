package ir

// Version constants for the data model and tool.
const (
	// SchemaVersion is the version of the persisted run format.
	SchemaVersion = "1"

	// ToolVersion is the pageorder release version.
	ToolVersion = "0.1.0"
)
