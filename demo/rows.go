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
	"github.com/retail360/commandcenter/core/rows"
)

// Campaign is a marketing project with its budget and spend.
type Campaign struct {
	ID       int64   `yaml:"id"`
	Name     string  `yaml:"name"`
	Type     string  `yaml:"type"`
	Brand    string  `yaml:"brand"`
	Status   string  `yaml:"status"`
	Dates    string  `yaml:"dates"`
	Budget   float64 `yaml:"budget"`
	Executed float64 `yaml:"executed"`
}

// Progress returns the executed share of the budget as a percentage,
// capped at 100.
func (c Campaign) Progress() float64 {
	if c.Budget <= 0 {
		return 0
	}
	return min(c.Executed/c.Budget*100, 100)
}

func (c Campaign) RowID() rows.ID {
	return rows.Int(c.ID)
}

func (c Campaign) Field(accessor string) any {
	switch accessor {
	case "id":
		return c.ID
	case "name":
		return c.Name
	case "type":
		return c.Type
	case "brand":
		return c.Brand
	case "status":
		return c.Status
	case "dates":
		return c.Dates
	case "budget":
		return c.Budget
	case "executed":
		return c.Executed
	case "progress":
		return c.Progress()
	}
	return nil
}

// Supplier is a directory contact.
type Supplier struct {
	ID       string `yaml:"id"`
	Company  string `yaml:"company"`
	Contact  string `yaml:"contact"`
	Category string `yaml:"category"`
	Email    string `yaml:"email"`
	Favorite bool   `yaml:"favorite"`
}

func (s Supplier) RowID() rows.ID {
	return rows.String(s.ID)
}

func (s Supplier) Field(accessor string) any {
	switch accessor {
	case "id":
		return s.ID
	case "company":
		return s.Company
	case "contact":
		return s.Contact
	case "category":
		return s.Category
	case "email":
		return s.Email
	case "favorite":
		return s.Favorite
	}
	return nil
}

// RateCardItem is a priced asset of the rate card.
type RateCardItem struct {
	ID       int64   `yaml:"id"`
	Item     string  `yaml:"item"`
	Category string  `yaml:"category"`
	Specs    string  `yaml:"specs"`
	Price    float64 `yaml:"price"`
	Unit     string  `yaml:"unit"`
}

func (r RateCardItem) RowID() rows.ID {
	return rows.Int(r.ID)
}

func (r RateCardItem) Field(accessor string) any {
	switch accessor {
	case "id":
		return r.ID
	case "item":
		return r.Item
	case "category":
		return r.Category
	case "specs":
		return r.Specs
	case "price":
		return r.Price
	case "unit":
		return r.Unit
	}
	return nil
}

// Quote is a priced proposal sent to a client.
type Quote struct {
	ID       string  `yaml:"id"`
	Client   string  `yaml:"client"`
	Campaign string  `yaml:"campaign"`
	Issued   string  `yaml:"issued"`
	Status   string  `yaml:"status"`
	Total    float64 `yaml:"total"`
}

func (q Quote) RowID() rows.ID {
	return rows.String(q.ID)
}

func (q Quote) Field(accessor string) any {
	switch accessor {
	case "id":
		return q.ID
	case "client":
		return q.Client
	case "campaign":
		return q.Campaign
	case "issued":
		return q.Issued
	case "status":
		return q.Status
	case "total":
		return q.Total
	}
	return nil
}

// Transaction is one budget movement of a campaign.
type Transaction struct {
	ID          int64   `yaml:"id"`
	Date        string  `yaml:"date"`
	Campaign    string  `yaml:"campaign"`
	Supplier    string  `yaml:"supplier"`
	Kind        string  `yaml:"kind"` // initial, income, expense
	Amount      float64 `yaml:"amount"`
	Description string  `yaml:"description"`
}

func (t Transaction) RowID() rows.ID {
	return rows.Int(t.ID)
}

func (t Transaction) Field(accessor string) any {
	switch accessor {
	case "id":
		return t.ID
	case "date":
		return t.Date
	case "campaign":
		return t.Campaign
	case "supplier":
		return t.Supplier
	case "kind":
		return t.Kind
	case "amount":
		return t.Amount
	case "description":
		return t.Description
	}
	return nil
}
