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
	"time"
)

// DefaultTransactions is the size of the generated billing ledger.
const DefaultTransactions = 5000

var ledgerStart = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

var ledgerItems = []string{
	"Print run", "Screen rental", "Installation", "Promoter fees",
	"Freight", "Creative retainer", "Client payment", "Fixture rental",
}

// GenerateTransactions builds a deterministic ledger of n movements spread
// across campaigns and suppliers. Each campaign opens with an initial
// movement for its budget.
func GenerateTransactions(n int, campaigns []Campaign, suppliers []Supplier) []Transaction {
	if n <= 0 || len(campaigns) == 0 {
		return nil
	}
	txns := make([]Transaction, 0, n)
	for i := range n {
		c := campaigns[i%len(campaigns)]
		t := Transaction{
			ID:       int64(i + 1),
			Date:     ledgerStart.AddDate(0, 0, (i*37)%300).Format(time.DateOnly),
			Campaign: c.Name,
		}
		switch {
		case i < len(campaigns):
			t.Kind = "initial"
			t.Amount = c.Budget
			t.Description = "Approved budget"
		case i%9 == 0:
			t.Kind = "income"
			t.Amount = float64(500 + (i*7919)%20000)
			t.Description = fmt.Sprintf("Client payment #%d", i)
		default:
			t.Kind = "expense"
			t.Amount = float64(50+(i*7919)%5000) + float64(i%100)/100
			t.Description = ledgerItems[i%len(ledgerItems)]
		}
		// Suppliers advance once per campaign cycle.
		if len(suppliers) > 0 && t.Kind == "expense" {
			t.Supplier = suppliers[(i/len(campaigns))%len(suppliers)].Company
		}
		txns = append(txns, t)
	}
	return txns
}
