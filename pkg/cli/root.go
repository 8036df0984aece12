// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/network-auditor/pkg/logging"
	"github.com/NVIDIA/network-auditor/pkg/serializer"
)

const (
	name           = "netauditor"
	versionDefault = "dev"

	defaultSettingsFile = "netauditor.yaml"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Flags are built per command tree; urfave flags keep parse state.

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to the settings file",
		Sources: cli.EnvVars("NETAUDITOR_CONFIG"),
		Value:   defaultSettingsFile,
	}
}

func logLevelFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "log-level",
		Usage:   "Override the configured log level (debug, info, warn, error)",
		Sources: cli.EnvVars(logging.EnvLogLevel),
	}
}

func inventoryFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "inventory",
		Aliases: []string{"i"},
		Usage:   "Path to the inventory file (default: auditor.inventory_file from settings)",
		Sources: cli.EnvVars("NETAUDITOR_INVENTORY"),
	}
}

func formatFlag(def serializer.Format) cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(def),
		Usage:   fmt.Sprintf("output format (%v)", serializer.SupportedFormats()),
	}
}

// newRootCmd builds the command tree.
func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Network device configuration auditor",
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Description: `Connects to every device in the inventory over SSH, archives the running
configuration, compares it to the golden template and writes a compliance
report per device.`,
		Flags: []cli.Flag{
			configFlag(),
			logLevelFlag(),
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			auditCmd(),
			diffCmd(),
			inventoryCmd(),
			serveCmd(),
		},
	}
}

// Execute runs the CLI. This is called by main.main(). Any error is
// logged and the process exits with status 1.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down gracefully...")
		cancel()
	}()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		slog.Error("netauditor failed", slog.Any("error", err))
		cancel()
		os.Exit(1) //nolint:gocritic // cancel is called explicitly above
	}
}
