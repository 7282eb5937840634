// Copyright 2022 Silvio Böhler
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package account

import (
	"github.com/sboehler/kasse/lib/common/table"
)

// ColumnWidth is the minimum width of a listing column.
const ColumnWidth = 10

// Header is the header row of a listing.
var Header = []string{"Account No", "Name", "Balance"}

// Listing lays out the accounts as a table, one row per account, in the
// given order.
func Listing(accounts []Account) *table.Table {
	t := table.New(len(Header))
	t.AddRow().
		AddText(Header[0], table.Left).
		AddText(Header[1], table.Left).
		AddText(Header[2], table.Right)
	t.AddSeparatorRow()
	for _, a := range accounts {
		t.AddRow().
			AddText(a.No.String(), table.Left).
			AddText(a.Name, table.Left).
			AddNumber(a.Balance)
	}
	return t
}

// NewTextRenderer returns a renderer for listings.
func NewTextRenderer(color bool) *table.TextRenderer {
	return &table.TextRenderer{
		Color:    color,
		Round:    Places,
		MinWidth: ColumnWidth,
	}
}
