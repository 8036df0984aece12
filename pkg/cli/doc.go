// Package cli implements the command-line interface for the netauditor tool.
//
// # Overview
//
// netauditor connects to every device in an inventory, retrieves its running
// configuration, archives it, compares it to a golden template and writes a
// per-device compliance report.
//
// # Commands
//
// audit - Audit all devices in the inventory:
//
//	netauditor audit [--inventory FILE] [--summary FILE] [--format yaml|json|table]
//
// Runs the full pipeline. Archives go to configs/, reports to reports/
// (both relative to the working directory unless overridden in settings).
// The run summary is written to stdout or --summary.
//
// diff - Compare two local configuration files:
//
//	netauditor diff --golden templates/golden.cfg --device configs/r1_20250601_143005.cfg
//
// Prints the unified diff without contacting any device.
//
// inventory - List inventory devices:
//
//	netauditor inventory [--format table]
//
// Credentials are never printed.
//
// serve - Run the auditor as a service:
//
//	netauditor serve --port 8080 --interval 1h --audit-on-start
//
// Exposes /health, /ready, /metrics and /v1/audits. With --interval the
// inventory is audited on a schedule; POST /v1/audits triggers a run.
//
// # Global Flags
//
//	--config, -c     Settings file (default: netauditor.yaml)
//	--log-level      Override the configured log level (debug, info, warn, error)
//	--help, -h       Show command help
//	--version, -v    Show version information
//
// # Environment Variables
//
//	NETAUDITOR_CONFIG     Settings file path
//	NETAUDITOR_INVENTORY  Inventory file path, overrides auditor.inventory_file
//	LOG_LEVEL             Logging verbosity, overrides the logging config file
//	PORT                  Listen port for serve
//
// # Exit Codes
//
//	0  Success
//	1  Fatal error (missing settings, logging config or inventory, invalid arguments),
//	   or drift found with --fail-on-drift
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/network-auditor/pkg/cli.version=1.0.0'"
package cli
