// Copyright 2025 The SH7372 Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/google/subcommands"
)

// onCmd implements subcommands.Command for the "on" command.
type onCmd struct {
	retry        bool
	retryTimeout time.Duration
}

// Name implements subcommands.Command.Name.
func (*onCmd) Name() string { return "on" }

// Synopsis implements subcommands.Command.Synopsis.
func (*onCmd) Synopsis() string { return "power a domain up" }

// Usage implements subcommands.Command.Usage.
func (*onCmd) Usage() string { return "on [-retry] <domain>\n" }

// SetFlags implements subcommands.Command.SetFlags.
func (c *onCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.retry, "retry", false, "retry a timed-out power-up with exponential backoff")
	f.DurationVar(&c.retryTimeout, "retry-timeout", 2*time.Second, "give up retrying after this long")
}

// Execute implements subcommands.Command.Execute.
func (c *onCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	ctrl, err := newController()
	if err != nil {
		return fail("%v", err)
	}
	d := ctrl.Lookup(f.Arg(0))
	if d == nil {
		return fail("unknown domain %q", f.Arg(0))
	}

	// A timed-out power-up is terminal per attempt; retrying is the
	// caller's business, which is exactly what -retry does.
	powerUp := func() error { return ctrl.PowerUp(d) }
	if c.retry {
		b := backoff.NewExponentialBackOff()
		b.MaxElapsedTime = c.retryTimeout
		err = backoff.Retry(powerUp, b)
	} else {
		err = powerUp()
	}
	if err != nil {
		return fail("%v", err)
	}

	fmt.Printf("%s: on, PSTR = 0x%08x\n", d.Name, ctrl.Status())
	return subcommands.ExitSuccess
}
