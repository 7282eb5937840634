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

// Package cmdtest provides helpers to test commands.
package cmdtest

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
)

// Run runs the command with the given arguments and returns its output. The
// test fails if the command returns an error.
func Run(t *testing.T, cmd *cobra.Command, args []string) []byte {
	t.Helper()
	stdout, stderr, err := Execute(cmd, "", args)
	if err != nil {
		t.Fatalf("%s %s: %v\n%s", cmd.Name(), strings.Join(args, " "), err, stderr)
	}
	return stdout
}

// Execute runs the command with the given input and arguments.
func Execute(cmd *cobra.Command, input string, args []string) (stdout, stderr []byte, err error) {
	var (
		out bytes.Buffer
		log lockedBuffer
	)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)
	cmd.SetErr(&log)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())
	return out.Bytes(), log.Bytes(), err
}

// lockedBuffer is written to by the logger and by progress bars, which
// refresh in the background.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

var _ io.Writer = (*lockedBuffer)(nil)

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.buf.Bytes()...)
}
