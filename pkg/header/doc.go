// Package header provides the envelope shared by documents the auditor
// writes: run summaries and inventory listings.
//
//	kind: AuditSummary
//	apiVersion: netauditor.nvidia.com/v1alpha1
//	metadata:
//	  timestamp: "2025-06-01T14:30:05Z"
//	  version: v0.3.0
//
// Types embed Header inline so the fields sit at the top level in both
// JSON and YAML. Consumers should check APIVersion before parsing.
package header
