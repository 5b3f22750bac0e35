package config

// Application constants
const (
	// Application Info
	AppName = "qareport"

	// EnvPrefix namespaces runtime settings, e.g. QAREPORT_LOGGING_LEVEL
	EnvPrefix = "QAREPORT"

	// DefaultConfigFile is read when no -config flag is given
	DefaultConfigFile = "config.json"

	// Log output modes
	LogOutputConsole = "console"
	LogOutputFile    = "file"
	LogOutputBoth    = "both"

	// Trace exporters
	TraceExporterNone   = "none"
	TraceExporterStdout = "stdout"

	// File permissions
	DirPermissions  = 0755
	FilePermissions = 0644
)
