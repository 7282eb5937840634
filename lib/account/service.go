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
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sboehler/kasse/lib/store"
)

const (
	insertAccount  = "INSERT INTO accounts (account_no, name, balance) VALUES (?, ?, ?)"
	selectAccounts = "SELECT account_no, name, balance FROM accounts"
	selectBalance  = "SELECT balance FROM accounts WHERE account_no = ?"
	updateBalance  = "UPDATE accounts SET balance = ? WHERE account_no = ?"
	deleteAccount  = "DELETE FROM accounts WHERE account_no = ?"
)

type gateway interface {
	Execute(ctx context.Context, st store.Statement) (*store.Result, error)
}

// Policy holds the configurable business rules.
type Policy struct {
	// RejectNegativeAmounts makes deposits and withdrawals of negative
	// amounts fail with ErrNegativeAmount.
	RejectNegativeAmounts bool
}

// Service implements the account operations. Every outcome is reported on
// the logger.
type Service struct {
	gw     gateway
	policy Policy
	logger *zap.Logger
}

// NewService creates a new service.
func NewService(gw gateway, policy Policy, logger *zap.Logger) *Service {
	return &Service{
		gw:     gw,
		policy: policy,
		logger: logger,
	}
}

// Create creates an account. Account numbers are unique; creating an
// existing number fails with ErrDuplicateAccount.
func (s *Service) Create(ctx context.Context, no No, name string, balance decimal.Decimal) (Account, error) {
	a := Account{No: no, Name: name, Balance: balance.Round(Places)}
	_, err := s.gw.Execute(ctx, store.Statement{
		Query: insertAccount,
		Args:  []any{int64(no), name, a.Balance},
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			err = fmt.Errorf("account %s: %w", no, ErrDuplicateAccount)
		}
		s.logger.Error("Account not created", zap.Stringer("account_no", no), zap.Error(err))
		return Account{}, err
	}
	s.logger.Info("Account created successfully!",
		zap.Stringer("account_no", no),
		zap.String("name", name),
		zap.String("balance", a.Balance.StringFixed(Places)))
	return a, nil
}

// List returns all accounts in the order returned by the store.
func (s *Service) List(ctx context.Context) ([]Account, error) {
	res, err := s.gw.Execute(ctx, store.Statement{Query: selectAccounts, Fetch: true})
	if err != nil {
		return nil, err
	}
	accounts := make([]Account, 0, len(res.Rows))
	for _, row := range res.Rows {
		a, err := rowToAccount(row)
		if err != nil {
			s.logger.Error("Invalid account record", zap.Error(err))
			return nil, err
		}
		accounts = append(accounts, a)
	}
	if len(accounts) == 0 {
		s.logger.Info("No accounts found.")
	}
	return accounts, nil
}

// Deposit adds the amount to the balance and returns the new balance.
func (s *Service) Deposit(ctx context.Context, no No, amount decimal.Decimal) (decimal.Decimal, error) {
	amount, err := s.checkAmount(no, amount)
	if err != nil {
		return decimal.Zero, err
	}
	current, err := s.balance(ctx, no)
	if err != nil {
		return decimal.Zero, err
	}
	balance := current.Add(amount)
	if err := s.setBalance(ctx, no, balance); err != nil {
		return decimal.Zero, err
	}
	s.logger.Info("Successfully deposited",
		zap.Stringer("account_no", no),
		zap.String("amount", amount.StringFixed(Places)),
		zap.String("balance", balance.StringFixed(Places)))
	return balance, nil
}

// Withdraw subtracts the amount from the balance if the balance covers it,
// and returns the new balance.
func (s *Service) Withdraw(ctx context.Context, no No, amount decimal.Decimal) (decimal.Decimal, error) {
	amount, err := s.checkAmount(no, amount)
	if err != nil {
		return decimal.Zero, err
	}
	current, err := s.balance(ctx, no)
	if err != nil {
		return decimal.Zero, err
	}
	if current.LessThan(amount) {
		s.logger.Warn("Insufficient balance.",
			zap.Stringer("account_no", no),
			zap.String("amount", amount.StringFixed(Places)),
			zap.String("balance", current.StringFixed(Places)))
		return current, fmt.Errorf("account %s: %w", no, ErrInsufficientFunds)
	}
	balance := current.Sub(amount)
	if err := s.setBalance(ctx, no, balance); err != nil {
		return decimal.Zero, err
	}
	s.logger.Info("Successfully withdrew",
		zap.Stringer("account_no", no),
		zap.String("amount", amount.StringFixed(Places)),
		zap.String("balance", balance.StringFixed(Places)))
	return balance, nil
}

// UpdateBalance overwrites the balance, whatever its previous value.
func (s *Service) UpdateBalance(ctx context.Context, no No, balance decimal.Decimal) error {
	balance = balance.Round(Places)
	if err := s.setBalance(ctx, no, balance); err != nil {
		return err
	}
	s.logger.Info("Balance updated successfully!",
		zap.Stringer("account_no", no),
		zap.String("balance", balance.StringFixed(Places)))
	return nil
}

// Delete deletes an account.
func (s *Service) Delete(ctx context.Context, no No) error {
	res, err := s.gw.Execute(ctx, store.Statement{
		Query: deleteAccount,
		Args:  []any{int64(no)},
	})
	if err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return s.notFound(no)
	}
	s.logger.Info("Account deleted successfully!", zap.Stringer("account_no", no))
	return nil
}

// checkAmount rounds the amount to Places and applies the amount policy.
func (s *Service) checkAmount(no No, amount decimal.Decimal) (decimal.Decimal, error) {
	amount = amount.Round(Places)
	if s.policy.RejectNegativeAmounts && amount.IsNegative() {
		err := fmt.Errorf("%w: %s", ErrNegativeAmount, amount.StringFixed(Places))
		s.logger.Error("Invalid amount", zap.Stringer("account_no", no), zap.Error(err))
		return decimal.Zero, err
	}
	return amount, nil
}

func (s *Service) balance(ctx context.Context, no No) (decimal.Decimal, error) {
	res, err := s.gw.Execute(ctx, store.Statement{
		Query: selectBalance,
		Args:  []any{int64(no)},
		Fetch: true,
	})
	if err != nil {
		return decimal.Zero, err
	}
	if len(res.Rows) == 0 {
		return decimal.Zero, s.notFound(no)
	}
	return toDecimal(res.Rows[0][0])
}

func (s *Service) setBalance(ctx context.Context, no No, balance decimal.Decimal) error {
	res, err := s.gw.Execute(ctx, store.Statement{
		Query: updateBalance,
		Args:  []any{balance, int64(no)},
	})
	if err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return s.notFound(no)
	}
	return nil
}

func (s *Service) notFound(no No) error {
	s.logger.Warn("Account not found.", zap.Stringer("account_no", no))
	return fmt.Errorf("account %s: %w", no, ErrAccountNotFound)
}

func rowToAccount(row store.Row) (Account, error) {
	var (
		res Account
		err error
	)
	if len(row) != 3 {
		return res, fmt.Errorf("account record has %d columns, want 3", len(row))
	}
	if res.No, err = toNo(row[0]); err != nil {
		return res, err
	}
	res.Name = toString(row[1])
	if res.Balance, err = toDecimal(row[2]); err != nil {
		return res, err
	}
	return res, nil
}

func toNo(v any) (No, error) {
	switch t := v.(type) {
	case int64:
		return No(t), nil
	case []byte:
		return toNo(string(t))
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid account number %q: %w", t, err)
		}
		return No(n), nil
	}
	return 0, fmt.Errorf("invalid account number %v of type %T", v, v)
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(t)
	case string:
		return t
	}
	return fmt.Sprint(v)
}

func toDecimal(v any) (decimal.Decimal, error) {
	if v == nil {
		return decimal.Zero, nil
	}
	var d decimal.Decimal
	if err := d.Scan(v); err != nil {
		return decimal.Zero, fmt.Errorf("invalid balance %v: %w", v, err)
	}
	return d.Round(Places), nil
}
