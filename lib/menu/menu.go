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

// Package menu implements the interactive text menu.
package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sboehler/kasse/lib/account"
)

// Command is a menu choice.
type Command int

// The menu choices, numbered as presented to the operator.
const (
	CreateAccount Command = iota + 1
	ViewAccounts
	DepositMoney
	WithdrawMoney
	UpdateBalance
	DeleteAccount
	Exit
)

var commandNames = [...]string{
	CreateAccount: "Create Account",
	ViewAccounts:  "View Accounts",
	DepositMoney:  "Deposit Money",
	WithdrawMoney: "Withdraw Money",
	UpdateBalance: "Update Balance",
	DeleteAccount: "Delete Account",
	Exit:          "Exit",
}

func (c Command) String() string {
	if c < CreateAccount || c > Exit {
		return fmt.Sprintf("Command(%d)", int(c))
	}
	return commandNames[c]
}

// ParseCommand parses a menu choice.
func ParseCommand(s string) (Command, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < int(CreateAccount) || n > int(Exit) {
		return 0, false
	}
	return Command(n), true
}

// Service is the set of account operations offered by the menu.
type Service interface {
	Create(ctx context.Context, no account.No, name string, balance decimal.Decimal) (account.Account, error)
	List(ctx context.Context) ([]account.Account, error)
	Deposit(ctx context.Context, no account.No, amount decimal.Decimal) (decimal.Decimal, error)
	Withdraw(ctx context.Context, no account.No, amount decimal.Decimal) (decimal.Decimal, error)
	UpdateBalance(ctx context.Context, no account.No, balance decimal.Decimal) error
	Delete(ctx context.Context, no account.No) error
}

// Menu reads choices from the operator and runs them one at a time.
type Menu struct {
	service Service
	in      *bufio.Scanner
	out     io.Writer
	logger  *zap.Logger

	// Color enables colored balances in listings.
	Color bool
}

// New creates a menu.
func New(service Service, in io.Reader, out io.Writer, logger *zap.Logger) *Menu {
	return &Menu{
		service: service,
		in:      bufio.NewScanner(in),
		out:     out,
		logger:  logger,
	}
}

// Run runs the menu until the operator exits or the input ends. Failed
// operations are reported on the logger and do not end the loop.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := m.printMenu(); err != nil {
			return err
		}
		choice, ok := m.prompt("Enter your choice: ")
		if !ok {
			m.logger.Info("Exiting program. Goodbye!")
			return m.in.Err()
		}
		cmd, ok := ParseCommand(choice)
		if !ok {
			m.logger.Warn("Invalid choice. Please try again.", zap.String("choice", choice))
			continue
		}
		if cmd == Exit {
			m.logger.Info("Exiting program. Goodbye!")
			return nil
		}
		if err := m.dispatch(ctx, cmd); err != nil {
			return err
		}
	}
}

func (m *Menu) printMenu() error {
	var b strings.Builder
	b.WriteString("\n=== Banking System ===\n")
	for c := CreateAccount; c <= Exit; c++ {
		fmt.Fprintf(&b, "%d. %s\n", c, c)
	}
	_, err := io.WriteString(m.out, b.String())
	return err
}

// dispatch runs a command. Only output errors are returned.
func (m *Menu) dispatch(ctx context.Context, cmd Command) error {
	switch cmd {
	case CreateAccount:
		m.createAccount(ctx)
	case ViewAccounts:
		return m.viewAccounts(ctx)
	case DepositMoney:
		m.depositMoney(ctx)
	case WithdrawMoney:
		m.withdrawMoney(ctx)
	case UpdateBalance:
		m.updateBalance(ctx)
	case DeleteAccount:
		m.deleteAccount(ctx)
	}
	return nil
}

func (m *Menu) createAccount(ctx context.Context) {
	const invalid = "Invalid input! Please enter numeric values where required."
	no, ok := m.readNo("Enter Account Number: ", invalid)
	if !ok {
		return
	}
	name, ok := m.prompt("Enter Account Holder Name: ")
	if !ok {
		return
	}
	balance, ok := m.readAmount("Enter Initial Balance: ", invalid)
	if !ok {
		return
	}
	m.service.Create(ctx, no, name, balance)
}

func (m *Menu) viewAccounts(ctx context.Context) error {
	accounts, err := m.service.List(ctx)
	if err != nil || len(accounts) == 0 {
		return nil
	}
	return account.NewTextRenderer(m.Color).Render(account.Listing(accounts), m.out)
}

func (m *Menu) depositMoney(ctx context.Context) {
	const invalid = "Invalid input! Please enter a valid amount."
	no, ok := m.readNo("Enter Account Number: ", invalid)
	if !ok {
		return
	}
	amount, ok := m.readAmount("Enter Amount to Deposit: ", invalid)
	if !ok {
		return
	}
	m.service.Deposit(ctx, no, amount)
}

func (m *Menu) withdrawMoney(ctx context.Context) {
	const invalid = "Invalid input! Please enter a valid amount."
	no, ok := m.readNo("Enter Account Number: ", invalid)
	if !ok {
		return
	}
	amount, ok := m.readAmount("Enter Amount to Withdraw: ", invalid)
	if !ok {
		return
	}
	m.service.Withdraw(ctx, no, amount)
}

func (m *Menu) updateBalance(ctx context.Context) {
	const invalid = "Invalid input! Please enter numeric values."
	no, ok := m.readNo("Enter Account Number: ", invalid)
	if !ok {
		return
	}
	balance, ok := m.readAmount("Enter New Balance: ", invalid)
	if !ok {
		return
	}
	m.service.UpdateBalance(ctx, no, balance)
}

func (m *Menu) deleteAccount(ctx context.Context) {
	no, ok := m.readNo("Enter Account Number to Delete: ", "Invalid input! Please enter a valid account number.")
	if !ok {
		return
	}
	m.service.Delete(ctx, no)
}

// prompt writes the label and reads one line. It returns false at the end
// of the input.
func (m *Menu) prompt(label string) (string, bool) {
	if _, err := io.WriteString(m.out, label); err != nil {
		return "", false
	}
	if !m.in.Scan() {
		return "", false
	}
	return m.in.Text(), true
}

func (m *Menu) readNo(label, invalid string) (account.No, bool) {
	s, ok := m.prompt(label)
	if !ok {
		return 0, false
	}
	no, err := account.ParseNo(s)
	if err != nil {
		m.logger.Error(invalid, zap.Error(err))
		return 0, false
	}
	return no, true
}

func (m *Menu) readAmount(label, invalid string) (decimal.Decimal, bool) {
	s, ok := m.prompt(label)
	if !ok {
		return decimal.Zero, false
	}
	amount, err := account.ParseAmount(s)
	if err != nil {
		m.logger.Error(invalid, zap.Error(err))
		return decimal.Zero, false
	}
	return amount, true
}
