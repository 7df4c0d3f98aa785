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

	"github.com/google/subcommands"
)

// offCmd implements subcommands.Command for the "off" command.
type offCmd struct{}

// Name implements subcommands.Command.Name.
func (*offCmd) Name() string { return "off" }

// Synopsis implements subcommands.Command.Synopsis.
func (*offCmd) Synopsis() string { return "request a domain power-down" }

// Usage implements subcommands.Command.Usage.
func (*offCmd) Usage() string { return "off <domain>\n" }

// SetFlags implements subcommands.Command.SetFlags.
func (*offCmd) SetFlags(*flag.FlagSet) {}

// Execute implements subcommands.Command.Execute.
func (*offCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
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

	// The state machine itself never refuses a power-down; the policy
	// gates live with the caller, so apply them here.
	if d.StayOn {
		return fail("domain %s is pinned on", d.Name)
	}
	if d.Governor != nil && !d.Governor.MayPowerDown(d) {
		return fail("domain %s: governor forbids power-down", d.Name)
	}

	if err := ctrl.PowerDown(d); err != nil {
		return fail("%v", err)
	}
	fmt.Printf("%s: power-down requested, PSTR = 0x%08x\n", d.Name, ctrl.Status())
	return subcommands.ExitSuccess
}
