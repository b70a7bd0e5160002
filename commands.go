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
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/retail360/commandcenter/core/grid"
	"github.com/retail360/commandcenter/core/rendering"
	"github.com/retail360/commandcenter/core/rows"
	"github.com/retail360/commandcenter/core/server"
	"github.com/retail360/commandcenter/core/sorting"
	"github.com/retail360/commandcenter/core/storage"
	"github.com/retail360/commandcenter/core/tui"
	"github.com/retail360/commandcenter/core/views"
	"github.com/retail360/commandcenter/core/widths"
	"github.com/retail360/commandcenter/datasources"
	"github.com/retail360/commandcenter/demo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return withDashboard(ctx, func(d *demo.Dashboard, _ storage.KV) error {
			srv, err := server.NewServer(d, cfg.Title, logger)
			if err != nil {
				return err
			}
			httpServer := &http.Server{
				Addr:              cfg.Server.Addr,
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				logger.Info("server listening", zap.String("addr", "http://"+cfg.Server.Addr))
				if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			})
			if cfg.Data.Watch {
				g.Go(func() error {
					return d.Sources().Watch(ctx)
				})
			}
			g.Go(func() error {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				logger.Info("shutting down server")
				return httpServer.Shutdown(shutdownCtx)
			})
			return g.Wait()
		})
	},
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the dashboard in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// The terminal belongs to the program; log only to a file.
		if cfg.Logging.File == "" {
			logger = zap.NewNop()
		}
		return withDashboard(ctx, func(d *demo.Dashboard, _ storage.KV) error {
			g, gctx := errgroup.WithContext(ctx)
			if cfg.Data.Watch {
				g.Go(func() error {
					return d.Sources().Watch(gctx)
				})
			}
			g.Go(func() error {
				defer cancel()
				m := tui.New(gctx, d.Grids(), tui.Options{
					CellPx:         cfg.TUI.CellPx,
					CardBreakpoint: cfg.TUI.CardBreakpoint,
					Logger:         logger,
				})
				_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(gctx)).Run()
				return err
			})
			return g.Wait()
		})
	},
}

var printCmd = &cobra.Command{
	Use:   "print [table]",
	Short: "Print a table as text",
	Long: `Prints a dashboard table, or a data file given with --file, as a text
table. Without arguments the available tables are listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sortFlag, _ := cmd.Flags().GetString("sort")
		cards, _ := cmd.Flags().GetBool("cards")
		file, _ := cmd.Flags().GetString("file")

		sortCfg, err := sorting.ParseConfig(sortFlag)
		if err != nil {
			return err
		}
		opts := grid.ViewOptions{Layout: views.LayoutTable}
		if cards {
			opts.Layout = views.LayoutCards
		}
		out := cmd.OutOrStdout()

		if file != "" {
			g, err := fileGrid(cmd.Context(), file)
			if err != nil {
				return err
			}
			g.SetSort(sortCfg)
			fmt.Fprint(out, rendering.RenderText(g.View(opts)))
			return nil
		}

		return withDashboard(cmd.Context(), func(d *demo.Dashboard, _ storage.KV) error {
			if len(args) == 0 {
				for _, g := range d.Grids() {
					fmt.Fprintf(out, "%-14s %s (%d rows)\n", g.Name(), g.Title(), g.Len())
				}
				return nil
			}
			g, ok := d.Grid(args[0])
			if !ok {
				return fmt.Errorf("table %q: %w", args[0], server.ErrUnknownTable)
			}
			g.SetSort(sortCfg)
			fmt.Fprint(out, rendering.RenderText(g.View(opts)))
			return nil
		})
	},
}

// fileGrid loads a data file into a grid backed by memory storage.
func fileGrid(ctx context.Context, path string) (*grid.Grid[rows.Record], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	t, err := datasources.DecodeTable(path, data)
	if err != nil {
		return nil, err
	}
	sorter, err := sorting.NewSorter(cfg.Grid.Locale)
	if err != nil {
		return nil, err
	}
	return grid.New(ctx, grid.Options[rows.Record]{
		TableName:    path,
		Columns:      t.GridColumns(),
		Data:         t.Records,
		EmptyMessage: cfg.Grid.EmptyMessage,
	}, storage.NewMemory(), sorter, logger)
}

var widthsCmd = &cobra.Command{
	Use:   "widths",
	Short: "Inspect or reset persisted column widths",
}

var widthsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List persisted column widths per table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		kv, closeKV, err := openStorage()
		if err != nil {
			return err
		}
		defer closeKV()

		all, err := widths.List(cmd.Context(), kv)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		tables := make([]string, 0, len(all))
		for t := range all {
			tables = append(tables, t)
		}
		slices.Sort(tables)
		for _, t := range tables {
			fmt.Fprintln(out, t)
			accessors := make([]string, 0, len(all[t]))
			for a := range all[t] {
				accessors = append(accessors, a)
			}
			slices.Sort(accessors)
			for _, a := range accessors {
				fmt.Fprintf(out, "  %-16s %s\n", a, all[t][a])
			}
		}
		return nil
	},
}

var widthsResetCmd = &cobra.Command{
	Use:   "reset [table]...",
	Short: "Reset column widths to their defaults",
	Long:  "Resets the widths of the named tables, or of every dashboard table when none is named.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDashboard(cmd.Context(), func(d *demo.Dashboard, _ storage.KV) error {
			targets := d.Grids()
			if len(args) > 0 {
				targets = nil
				for _, name := range args {
					g, ok := d.Grid(name)
					if !ok {
						return fmt.Errorf("table %q: %w", name, server.ErrUnknownTable)
					}
					targets = append(targets, g)
				}
			}
			for _, g := range targets {
				if err := g.ResetWidths(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "reset %s\n", g.Name())
			}
			return nil
		})
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Save(configPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", configPath)
		return nil
	},
}
