// Copyright 2021 Silvio Böhler
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

package table

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

// TextRenderer renders a table to text. Columns are separated by " | ".
type TextRenderer struct {
	table    *Table
	Color    bool
	Round    int32
	MinWidth int
}

var (
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
)

// Render renders this table to the writer.
func (r *TextRenderer) Render(t *Table, w io.Writer) error {
	r.table = t
	defer func() { r.table = nil }()
	color.NoColor = !r.Color

	widths := make([]int, r.table.Width())
	for i := range widths {
		widths[i] = r.MinWidth
	}
	for _, row := range r.table.rows {
		for i, c := range row.cells {
			if widths[i] < r.minLengthCell(c) {
				widths[i] = r.minLengthCell(c)
			}
		}
	}
	for _, row := range r.table.rows {
		for i, c := range row.cells {
			if err := r.renderCell(c, widths[i], w); err != nil {
				return err
			}
			if i < len(row.cells)-1 {
				if err := writeString(w, createSep(c, row.cells[i+1])); err != nil {
					return err
				}
			}
		}
		if err := writeString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func (r *TextRenderer) renderCell(c cell, l int, w io.Writer) error {
	switch t := c.(type) {

	case emptyCell:
		return writeSpace(w, l)

	case SeparatorCell:
		return writeStrings(w, "-", l)

	case textCell:
		var before int
		if t.Align == Right {
			before = l - utf8.RuneCountInString(t.Content)
		}
		if err := writeSpace(w, before); err != nil {
			return err
		}
		if err := writeString(w, t.Content); err != nil {
			return err
		}
		return writeSpace(w, l-before-utf8.RuneCountInString(t.Content))

	case numberCell:
		var (
			s      = t.n.StringFixed(r.Round)
			before = l - utf8.RuneCountInString(s)
		)
		if err := writeSpace(w, before); err != nil {
			return err
		}
		var err error
		switch {
		case t.n.LessThan(decimal.Zero):
			_, err = red.Fprint(w, s)
		case t.n.Equal(decimal.Zero):
			_, err = fmt.Fprint(w, s)
		case t.n.GreaterThan(decimal.Zero):
			_, err = green.Fprint(w, s)
		}
		return err
	}
	return fmt.Errorf("%v is not a valid cell type", c)
}

func writeStrings(w io.Writer, s string, l int) error {
	for i := 0; i < l; i++ {
		if err := writeString(w, s); err != nil {
			return err
		}
	}
	return nil
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

func writeSpace(w io.Writer, l int) error {
	return writeStrings(w, " ", l)
}

func (r *TextRenderer) minLengthCell(c cell) int {
	switch t := c.(type) {
	case emptyCell, SeparatorCell:
		return 0
	case textCell:
		return utf8.RuneCountInString(t.Content)
	case numberCell:
		return utf8.RuneCountInString(t.n.StringFixed(r.Round))
	}
	return 0
}

func createSep(c1, c2 cell) string {
	switch {
	case c1.isSep() && c2.isSep():
		return "-+-"
	case c1.isSep():
		return "-+ "
	case c2.isSep():
		return " +-"
	default:
		return " | "
	}
}
