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

	"github.com/shmobile/sh7372/pkg/mmio"
	"github.com/shmobile/sh7372/pkg/standby"
)

// standbyCmd implements subcommands.Command for the "standby" command. It
// walks the core standby sequence against the simulated bank, optionally
// simulating a full power loss during the sleep.
type standbyCmd struct {
	powerLoss bool
}

// Name implements subcommands.Command.Name.
func (*standbyCmd) Name() string { return "standby" }

// Synopsis implements subcommands.Command.Synopsis.
func (*standbyCmd) Synopsis() string { return "run the core standby sequence (simulator only)" }

// Usage implements subcommands.Command.Usage.
func (*standbyCmd) Usage() string { return "standby [-power-loss]\n" }

// SetFlags implements subcommands.Command.SetFlags.
func (c *standbyCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.powerLoss, "power-loss", false, "simulate the core losing power while asleep")
}

// Execute implements subcommands.Command.Execute.
func (c *standbyCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if *simPath == "" {
		return fail("standby requires -sim")
	}
	port, err := newPort()
	if err != nil {
		return fail("%v", err)
	}

	cpu := &simCPU{port: port, powerLoss: c.powerLoss}
	standby.New(port, cpu).Enter()

	if cpu.restored {
		fmt.Println("woke from full power loss; CPU state restored")
	} else {
		fmt.Println("woke from clock-gated idle; no restore needed")
	}
	return subcommands.ExitSuccess
}

// simCPU stands in for the architecture-specific steps. When simulating a
// power loss it plays the resume firmware's part and fills in the wake
// record during the sleep.
type simCPU struct {
	port      mmio.Port
	powerLoss bool
	restored  bool
}

func (c *simCPU) ResumeEntry() uintptr { return 0x40f00000 }

func (c *simCPU) Suspend() {
	if c.powerLoss {
		c.port.Write32(standby.SMFRAM+standby.RecordControlReg, 0x00c5187d)
		c.port.Write32(standby.SMFRAM+standby.RecordPageTable, 0x40004000)
		c.port.Write32(standby.SMFRAM+standby.RecordPageEntry, 0x4000140e)
	}
}

func (c *simCPU) Init() {}

func (c *simCPU) RestorePageTable(base uintptr, entry uint32) {
	c.restored = true
}

func (c *simCPU) FlushTLB() {}

func (c *simCPU) SetControlRegister(v uint32) {}
