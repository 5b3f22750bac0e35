// Package app runs the report pipeline for one report configuration.
//
// # Flow
//
// A run proceeds in a fixed order:
//
//  1. Expand input_files (literal paths, globs, directories)
//  2. Validate output locations
//  3. Parse each input; unreadable files are logged and skipped
//  4. Aggregate all parsed rows into one table and its summary
//  5. Render the PDF report, then the Excel report, then the optional CSV
//  6. Print the console summary and success message
//  7. Write the optional metrics textfile
//
// # Usage
//
//	cfg, err := config.LoadReportConfig("config.json")
//	if err != nil {
//	    return err
//	}
//	result, err := app.Run(ctx, cfg, app.WithTelemetry(providers))
//
// # Error Handling
//
// Only per-file parse failures are recovered. Aggregation and rendering
// errors end the run and are returned to the caller; the package never
// calls os.Exit, leaving that to main.
package app
