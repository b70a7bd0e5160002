/*
SPDX-License-Identifier: Apache-2.0

Copyright 2026 The Command Center Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/retail360/commandcenter/core/config"
	"github.com/retail360/commandcenter/core/logging"
	"github.com/retail360/commandcenter/core/storage"
	"github.com/retail360/commandcenter/demo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath    string
	storageDriver string
	verbose       bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "commandcenter",
	Short: "Retail media command center",
	Long: `Browse campaigns, suppliers, the rate card, quotes and transactions
in sortable, selectable grids with resizable columns.

Column widths are persisted per table. Datasets can be overridden with YAML
files in the data directory; they are reloaded when they change.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
		if storageDriver != "" {
			cfg.Storage.Driver = storageDriver
			if err := cfg.Validate(); err != nil {
				return err
			}
		}
		if logger, err = logging.New(cfg.Logging, verbose); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "commandcenter.yaml", "path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&storageDriver, "storage", "", "override storage.driver (sqlite or memory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	printCmd.Flags().String("sort", "", "sort as key:asc or key:desc")
	printCmd.Flags().Bool("cards", false, "stack rows as cards")
	printCmd.Flags().String("file", "", "print a CSV, TSV or YAML file instead of a dashboard table")

	widthsCmd.AddCommand(widthsListCmd, widthsResetCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(serveCmd, tuiCmd, printCmd, widthsCmd, configCmd)
}

// openStorage opens the configured width store.
func openStorage() (storage.KV, func() error, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		return storage.NewMemory(), func() error { return nil }, nil
	}
	db, err := storage.OpenSQLite(cfg.Storage.Path)
	if err != nil {
		return nil, nil, err
	}
	return db, db.Close, nil
}

// withDashboard builds the dashboard over the configured storage and tears
// both down after fn returns.
func withDashboard(ctx context.Context, fn func(d *demo.Dashboard, kv storage.KV) error) (err error) {
	kv, closeKV, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, closeKV()) }()

	d, err := demo.NewDashboard(ctx, cfg, kv, logger)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, d.Close()) }()
	return fn(d, kv)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
