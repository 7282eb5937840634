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

// Package commands contains the subcommands of kasse.
package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/sboehler/kasse/cmd/flags"
	"github.com/sboehler/kasse/lib/account"
	"github.com/sboehler/kasse/lib/logging"
	"github.com/sboehler/kasse/lib/store"
)

// environment holds the dependencies of a command invocation.
type environment struct {
	logger  *zap.Logger
	gateway *store.Gateway
	service *account.Service
}

func newEnvironment(ctx context.Context, cmd *cobra.Command, gf *flags.GlobalFlags) (*environment, error) {
	cfg, err := gf.Config()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	gw, err := store.Open(ctx, cfg.Database.Driver, cfg.Database.DataSourceName(), logger.Named("store"))
	if err != nil {
		return nil, err
	}
	if err := gw.EnsureSchema(ctx); err != nil {
		return nil, multierr.Append(err, gw.Close())
	}
	policy := account.Policy{RejectNegativeAmounts: cfg.Policy.RejectNegativeAmounts}
	return &environment{
		logger:  logger,
		gateway: gw,
		service: account.NewService(gw, policy, logger),
	}, nil
}

// withEnvironment opens an environment, passes it to f and closes it again.
func withEnvironment(cmd *cobra.Command, gf *flags.GlobalFlags, f func(*environment) error) (err error) {
	env, err := newEnvironment(cmd.Context(), cmd, gf)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, env.close()) }()
	return f(env)
}

func (env *environment) close() error {
	return env.gateway.Close()
}
