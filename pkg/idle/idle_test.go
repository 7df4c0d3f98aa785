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

package idle_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/shmobile/sh7372/pkg/idle"
	"github.com/shmobile/sh7372/pkg/mmio"
	"github.com/shmobile/sh7372/pkg/standby"
)

// nopCPU satisfies standby.CPU without side effects.
type nopCPU struct {
	suspends int
}

func (c *nopCPU) ResumeEntry() uintptr             { return 0x40f00000 }
func (c *nopCPU) Suspend()                         { c.suspends++ }
func (c *nopCPU) Init()                            {}
func (c *nopCPU) RestorePageTable(uintptr, uint32) {}
func (c *nopCPU) FlushTLB()                        {}
func (c *nopCPU) SetControlRegister(uint32)        {}

func TestRegisterCoreStandby(t *testing.T) {
	cpu := &nopCPU{}
	s := standby.New(mmio.NewMem(), cpu)

	var menu idle.Menu
	idle.RegisterCoreStandby(&menu, s)

	want := []idle.State{{
		Name:            "C2",
		Desc:            "Core Standby Mode",
		ExitLatency:     10 * time.Microsecond,
		TargetResidency: 30 * time.Microsecond,
	}}
	opts := cmpopts.IgnoreFields(idle.State{}, "Enter")
	if diff := cmp.Diff(want, menu.States(), opts); diff != "" {
		t.Errorf("menu mismatch (-want +got):\n%s", diff)
	}

	menu.States()[0].Enter()
	if cpu.suspends != 1 {
		t.Errorf("entering the state suspended %d times, want 1", cpu.suspends)
	}
}

func TestBindSuspend(t *testing.T) {
	cpu := &nopCPU{}
	s := standby.New(mmio.NewMem(), cpu)

	var ops idle.SuspendOps
	idle.BindSuspend(&ops, s)

	if err := ops.Enter(idle.SuspendMem); err != nil {
		t.Fatalf("Enter(SuspendMem): %v", err)
	}
	if cpu.suspends != 1 {
		t.Errorf("suspend entered the core standby %d times, want 1", cpu.suspends)
	}
}
