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

// statusCmd implements subcommands.Command for the "status" command.
type statusCmd struct{}

// Name implements subcommands.Command.Name.
func (*statusCmd) Name() string { return "status" }

// Synopsis implements subcommands.Command.Synopsis.
func (*statusCmd) Synopsis() string { return "show the power state of every domain" }

// Usage implements subcommands.Command.Usage.
func (*statusCmd) Usage() string { return "status\n" }

// SetFlags implements subcommands.Command.SetFlags.
func (*statusCmd) SetFlags(*flag.FlagSet) {}

// Execute implements subcommands.Command.Execute.
func (*statusCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	c, err := newController()
	if err != nil {
		return fail("%v", err)
	}

	pstr := c.Status()
	fmt.Printf("PSTR = 0x%08x\n", pstr)
	for _, d := range c.Domains() {
		state := "off"
		if pstr&(1<<d.Bit) != 0 {
			state = "on"
		}
		note := ""
		if d.StayOn {
			note = " (stay-on)"
		}
		fmt.Printf("%-5s bit %2d  %s%s\n", d.Name, d.Bit, state, note)
	}
	return subcommands.ExitSuccess
}
