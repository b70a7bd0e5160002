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

package demo

import (
	"fmt"
	"math"
	"strings"

	"github.com/retail360/commandcenter/core/columns"
	"github.com/retail360/commandcenter/core/rows"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// formatter renders numbers for a locale.
type formatter struct {
	p *message.Printer
}

func newFormatter(locale string) formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return formatter{p: message.NewPrinter(tag)}
}

func (f formatter) currency(v float64) string {
	if v < 0 {
		return "-" + f.p.Sprintf("$%.2f", -v)
	}
	return f.p.Sprintf("$%.2f", v)
}

// highlightMarker prefixes the label of the highlighted row.
func highlightMarker(id rows.ID, ctx columns.RenderContext, label string) string {
	if id.Valid() && id == ctx.HighlightedID {
		return "▸ " + label
	}
	return label
}

func statusBadge(status string) string {
	switch status {
	case "Active", "Accepted", "Paid":
		return "● " + status
	case "Pending", "Sent":
		return "◐ " + status
	case "Done", "Rejected", "Cancelled":
		return "○ " + status
	}
	return "· " + status
}

func progressBar(pct float64) string {
	filled := int(math.Round(min(max(pct, 0), 100) / 10))
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled) + fmt.Sprintf(" %3.0f%%", pct)
}

func campaignColumns(f formatter) []columns.Column[Campaign] {
	return []columns.Column[Campaign]{
		{Accessor: "id", Header: "ID", Width: "80px", Sortable: true},
		{Accessor: "name", Header: "Campaign", Width: "260px", Sortable: true,
			Render: func(c Campaign, ctx columns.RenderContext) string {
				return highlightMarker(c.RowID(), ctx, c.Name+" · "+c.Type)
			}},
		{Accessor: "brand", Header: "Brand", Width: "140px", Sortable: true},
		{Accessor: "status", Header: "Status", Width: "130px", Sortable: true,
			Render: func(c Campaign, _ columns.RenderContext) string { return statusBadge(c.Status) }},
		{Accessor: "dates", Header: "Dates"},
		{Accessor: "budget", Header: "Budget", Width: "150px", Sortable: true, ClassName: "num",
			Render: func(c Campaign, _ columns.RenderContext) string { return f.currency(c.Budget) }},
		{Accessor: "progress", Header: "Progress", Width: "170px", Sortable: true,
			Render: func(c Campaign, _ columns.RenderContext) string { return progressBar(c.Progress()) }},
	}
}

func supplierColumns() []columns.Column[Supplier] {
	return []columns.Column[Supplier]{
		{Accessor: "id", Header: "ID", Width: "90px"},
		{Accessor: "company", Header: "Company", Width: "220px", Sortable: true,
			Render: func(s Supplier, ctx columns.RenderContext) string {
				return highlightMarker(s.RowID(), ctx, s.Company)
			}},
		{Accessor: "contact", Header: "Contact", Width: "180px", Sortable: true},
		{Accessor: "category", Header: "Category", Width: "160px", Sortable: true},
		{Accessor: "email", Header: "Email"},
		{Accessor: "favorite", HeaderFunc: func() string { return "★" }, Width: "60px",
			Render: func(s Supplier, _ columns.RenderContext) string {
				if s.Favorite {
					return "★"
				}
				return "☆"
			}},
	}
}

func rateCardColumns(f formatter) []columns.Column[RateCardItem] {
	return []columns.Column[RateCardItem]{
		{Accessor: "item", Header: "Item", Width: "240px", Sortable: true},
		{Accessor: "category", Header: "Category", Width: "160px", Sortable: true},
		{Accessor: "specs", Header: "Specs", Sortable: true},
		{Accessor: "price", Header: "Price", Width: "140px", Sortable: true, ClassName: "num",
			Render: func(r RateCardItem, _ columns.RenderContext) string { return f.currency(r.Price) }},
		{Accessor: "unit", Header: "Unit", Width: "100px", Sortable: true},
	}
}

func quoteColumns(f formatter) []columns.Column[Quote] {
	return []columns.Column[Quote]{
		{Accessor: "id", Header: "Quote", Width: "130px", Sortable: true,
			Render: func(q Quote, ctx columns.RenderContext) string {
				return highlightMarker(q.RowID(), ctx, q.ID)
			}},
		{Accessor: "client", Header: "Client", Width: "200px", Sortable: true},
		{Accessor: "campaign", Header: "Campaign", Width: "220px", Sortable: true},
		{Accessor: "issued", Header: "Issued", Width: "120px", Sortable: true},
		{Accessor: "status", Header: "Status", Width: "130px", Sortable: true,
			Render: func(q Quote, _ columns.RenderContext) string { return statusBadge(q.Status) }},
		{Accessor: "total", Header: "Total", Width: "150px", Sortable: true, ClassName: "num",
			Render: func(q Quote, _ columns.RenderContext) string { return f.currency(q.Total) }},
	}
}

func transactionColumns(f formatter) []columns.Column[Transaction] {
	return []columns.Column[Transaction]{
		{Accessor: "id", Header: "ID", Width: "100px", Sortable: true},
		{Accessor: "date", Header: "Date", Width: "120px", Sortable: true},
		{Accessor: "campaign", Header: "Campaign", Width: "220px", Sortable: true},
		{Accessor: "supplier", Header: "Supplier", Width: "200px", Sortable: true},
		{Accessor: "kind", Header: "Kind", Width: "110px", Sortable: true},
		{Accessor: "amount", Header: "Amount", Width: "150px", Sortable: true, ClassName: "num",
			Render: func(t Transaction, _ columns.RenderContext) string {
				if t.Kind == "expense" {
					return f.currency(-t.Amount)
				}
				return f.currency(t.Amount)
			}},
		{Accessor: "description", Header: "Description"},
	}
}
