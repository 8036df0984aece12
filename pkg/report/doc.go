// Package report writes per-device compliance reports.
//
// A report is plain text at {dir}/{device}_report.txt. When the device
// configuration matches the golden file the report holds a single line:
//
//	No differences found. Configuration is compliant.
//
// Otherwise it holds the unified diff exactly as produced by package golden.
// Reports are replaced on every run.
package report
