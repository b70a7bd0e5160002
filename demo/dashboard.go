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

// Package demo builds the marketing operations dashboard: one grid per
// dataset, seeded from embedded files and optionally overridden by YAML
// files that are reloaded when they change.
package demo

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/retail360/commandcenter/core/columns"
	"github.com/retail360/commandcenter/core/config"
	"github.com/retail360/commandcenter/core/grid"
	"github.com/retail360/commandcenter/core/rows"
	"github.com/retail360/commandcenter/core/sorting"
	"github.com/retail360/commandcenter/core/storage"
	"github.com/retail360/commandcenter/datasources"
	"go.uber.org/zap"
)

// Table names. They also key persisted widths and override files.
const (
	CampaignsTable    = "campaigns"
	SuppliersTable    = "suppliers"
	RateCardTable     = "ratecard"
	QuotesTable       = "quotes"
	TransactionsTable = "transactions"
)

//go:embed data/campaigns.yaml
var campaignsYAML []byte

//go:embed data/suppliers.yaml
var suppliersYAML []byte

//go:embed data/ratecard.yaml
var rateCardYAML []byte

//go:embed data/quotes.yaml
var quotesYAML []byte

// Dashboard owns the grids and their selection state.
type Dashboard struct {
	mu        sync.Mutex
	selection map[string][]rows.ID

	Campaigns    *grid.Grid[Campaign]
	Suppliers    *grid.Grid[Supplier]
	RateCard     *grid.Grid[RateCardItem]
	Quotes       *grid.Grid[Quote]
	Transactions *grid.Grid[Transaction]

	grids        []grid.Controller
	sources      *datasources.Manager
	emptyMessage string
	logger       *zap.Logger
}

// tableOptions tweaks the grid built for one dataset.
type tableOptions struct {
	title     string
	highlight bool
}

// NewDashboard builds the dashboard grids over kv. Override files found in
// cfg.Data.Dir replace the seeds; a broken override is logged and the seed
// is kept.
func NewDashboard(ctx context.Context, cfg *config.Config, kv storage.KV, logger *zap.Logger) (*Dashboard, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	sorter, err := sorting.NewSorter(cfg.Grid.Locale)
	if err != nil {
		return nil, err
	}
	f := newFormatter(cfg.Grid.Locale)

	campaigns, err := seed[Campaign](CampaignsTable, campaignsYAML)
	if err != nil {
		return nil, err
	}
	suppliers, err := seed[Supplier](SuppliersTable, suppliersYAML)
	if err != nil {
		return nil, err
	}
	rateCard, err := seed[RateCardItem](RateCardTable, rateCardYAML)
	if err != nil {
		return nil, err
	}
	quotes, err := seed[Quote](QuotesTable, quotesYAML)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		selection:    make(map[string][]rows.ID),
		sources:      datasources.NewManager(cfg.Data.Dir, logger),
		emptyMessage: cfg.Grid.EmptyMessage,
		logger:       logger,
	}

	if d.Campaigns, err = addTable(ctx, d, kv, sorter, CampaignsTable, campaignColumns(f), campaigns,
		tableOptions{title: "Campaigns", highlight: true}); err != nil {
		return nil, err
	}
	if d.Suppliers, err = addTable(ctx, d, kv, sorter, SuppliersTable, supplierColumns(), suppliers,
		tableOptions{title: "Suppliers", highlight: true}); err != nil {
		return nil, err
	}
	if d.RateCard, err = addTable(ctx, d, kv, sorter, RateCardTable, rateCardColumns(f), rateCard,
		tableOptions{title: "Rate Card"}); err != nil {
		return nil, err
	}
	if d.Quotes, err = addTable(ctx, d, kv, sorter, QuotesTable, quoteColumns(f), quotes,
		tableOptions{title: "Quotes", highlight: true}); err != nil {
		return nil, err
	}
	if d.Transactions, err = addTable(ctx, d, kv, sorter, TransactionsTable, transactionColumns(f),
		GenerateTransactions(DefaultTransactions, campaigns, suppliers),
		tableOptions{title: "Transactions"}); err != nil {
		return nil, err
	}

	if err := d.sources.LoadAll(ctx); err != nil {
		logger.Warn("failed to apply dataset overrides", zap.Error(err))
	}
	return d, nil
}

func seed[T rows.Row](name string, data []byte) ([]T, error) {
	out, err := datasources.DecodeYAML[T](data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s seed: %w", name, err)
	}
	return out, nil
}

// addTable creates a grid whose selection is owned by d and registers the
// override file of its dataset.
func addTable[T rows.Row](ctx context.Context, d *Dashboard, kv storage.KV, sorter *sorting.Sorter,
	name string, cols []columns.Column[T], data []T, topts tableOptions) (*grid.Grid[T], error) {
	var g *grid.Grid[T]
	opts := grid.Options[T]{
		TableName:       name,
		Title:           topts.title,
		Columns:         cols,
		Data:            data,
		EnableSelection: true,
		EmptyMessage:    d.emptyMessage,
		OnSelectionChange: func(ids []rows.ID) {
			d.setSelection(name, ids)
			g.SetSelected(ids)
		},
		OnRowContextMenu: func(ev grid.ContextMenuEvent, row T) {
			d.logger.Info("context menu requested",
				zap.String("table", name),
				zap.Stringer("row", row.RowID()),
				zap.Float64("x", ev.X),
				zap.Float64("y", ev.Y))
		},
	}
	if topts.highlight {
		opts.OnRowClick = func(row T) {
			g.SetHighlighted(row.RowID())
			d.logger.Debug("row highlighted", zap.String("table", name), zap.Stringer("row", row.RowID()))
		}
	}

	var err error
	if g, err = grid.New(ctx, opts, kv, sorter, d.logger); err != nil {
		return nil, err
	}
	d.grids = append(d.grids, g)

	err = d.sources.Register(name, name+".yaml", func(_ context.Context, data []byte) error {
		recs, err := datasources.DecodeYAML[T](data)
		if err != nil {
			return err
		}
		g.SetData(recs)
		prune(d, name, g, recs)
		d.logger.Info("dataset reloaded", zap.String("table", name), zap.Int("rows", len(recs)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// prune drops selected and highlighted ids that no longer name a row.
func prune[T rows.Row](d *Dashboard, name string, g *grid.Grid[T], recs []T) {
	present := rows.IDs(recs)
	d.mu.Lock()
	kept := slices.DeleteFunc(slices.Clone(d.selection[name]), func(id rows.ID) bool {
		return !slices.Contains(present, id)
	})
	d.selection[name] = kept
	d.mu.Unlock()

	g.SetSelected(kept)
	if h := g.Highlighted(); h.Valid() && !slices.Contains(present, h) {
		g.SetHighlighted(rows.None)
	}
}

func (d *Dashboard) setSelection(name string, ids []rows.ID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selection[name] = slices.Clone(ids)
}

// Selection returns the selected ids of a table in selection order.
func (d *Dashboard) Selection(name string) []rows.ID {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.selection[name])
}

// Sources returns the dataset override files.
func (d *Dashboard) Sources() *datasources.Manager {
	return d.sources
}

// Grids returns the grids in tab order.
func (d *Dashboard) Grids() []grid.Controller {
	return d.grids
}

// Grid returns the grid registered under name.
func (d *Dashboard) Grid(name string) (grid.Controller, bool) {
	for _, g := range d.grids {
		if g.Name() == name {
			return g, true
		}
	}
	return nil, false
}

// Close closes every grid.
func (d *Dashboard) Close() error {
	var errs []error
	for _, g := range d.grids {
		errs = append(errs, g.Close())
	}
	return errors.Join(errs...)
}
