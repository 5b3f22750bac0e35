// Package shared holds helpers used across packages that belong to no
// single layer.
//
// The testutil subpackage provides log capture and input-file fixtures for
// tests: CSV, JSON and Excel test-result files written into a temporary
// directory.
package shared
