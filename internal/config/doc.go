// Package config loads the two kinds of configuration a report run needs.
//
// # Report configuration
//
// A JSON (or YAML) file naming the inputs and outputs of a run:
//
//	{
//	    "input_files": ["results/suite_a.csv", "results/*.json"],
//	    "output_pdf": "out/report.pdf",
//	    "output_excel": "out/report.xlsx"
//	}
//
// The three keys above are required; a missing key fails with a
// MISSING_CONFIG_KEY error naming it. "output_csv" and "metrics_file" are
// optional. Relative paths resolve against the config file's directory.
//
// # Runtime settings
//
// Logging and telemetry come from QAREPORT_* environment variables:
//
//	QAREPORT_LOGGING_LEVEL=debug
//	QAREPORT_LOGGING_OUTPUT=both
//	QAREPORT_LOGGING_FILE_PATH=logs/qareport.log
//	QAREPORT_TELEMETRY_TRACE_EXPORTER=stdout
//	QAREPORT_TELEMETRY_ENABLE_METRICS=false
package config
