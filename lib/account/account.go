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
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// No is an account number.
type No int64

func (no No) String() string {
	return strconv.FormatInt(int64(no), 10)
}

// Account represents an account.
type Account struct {
	No      No
	Name    string
	Balance decimal.Decimal
}

// Places is the number of fractional digits of balances and amounts.
const Places = 2

// ParseNo parses an account number.
func ParseNo(s string) (No, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: account number %q", ErrInvalidInput, s)
	}
	return No(n), nil
}

// ParseAmount parses a decimal amount and rounds it to two places.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q", ErrInvalidInput, s)
	}
	return d.Round(Places), nil
}
