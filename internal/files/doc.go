// Package files expands the input_files entries of a report configuration
// into the concrete list of files handed to the parser.
//
// Entries may be literal paths, glob patterns or directories. Literal paths
// pass through untouched so a missing file still reaches the parser and is
// reported there like any other unreadable input.
//
// Example usage:
//
//	discovery := files.NewDiscovery(dataprocessing.IsSupported)
//	inputs, err := discovery.ExpandInputs(cfg.InputFiles)
package files
