// Package errors provides the structured error type used across the auditor.
//
// Every fatal condition (missing settings, logging configuration or
// inventory file) and every per-device failure is reported as a
// StructuredError so the CLI can log it once with its code and context.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeUnavailable,
//	    "failed to run command",
//	    cause,
//	    map[string]any{
//	        "command": "show running-config",
//	        "device":  device.Hostname,
//	    },
//	)
package errors
