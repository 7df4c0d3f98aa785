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

package standby

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/shmobile/sh7372/pkg/mmio"
)

// fakeCPU records the architecture-specific calls. Its onSuspend hook
// plays the role of the hardware and resume firmware.
type fakeCPU struct {
	calls     []string
	onSuspend func()
}

func (c *fakeCPU) ResumeEntry() uintptr { return 0x40f00000 }

func (c *fakeCPU) Suspend() {
	c.calls = append(c.calls, "suspend")
	if c.onSuspend != nil {
		c.onSuspend()
	}
}

func (c *fakeCPU) Init() {
	c.calls = append(c.calls, "init")
}

func (c *fakeCPU) RestorePageTable(base uintptr, entry uint32) {
	c.calls = append(c.calls, fmt.Sprintf("restore-pt:%#x:%#x", base, entry))
}

func (c *fakeCPU) FlushTLB() {
	c.calls = append(c.calls, "flush-tlb")
}

func (c *fakeCPU) SetControlRegister(v uint32) {
	c.calls = append(c.calls, fmt.Sprintf("set-cr:%#x", v))
}

func TestEnterArmsHardware(t *testing.T) {
	mem := mmio.NewMem()
	cpu := &fakeCPU{}

	// Observe the armed state from inside the sleep.
	cpu.onSuspend = func() {
		if v := mem.Peek(SBAR); v != 0x40f00000 {
			t.Errorf("SBAR = %#x during sleep, want resume entry", v)
		}
		if v := mem.Peek(SYSTBCR); v != 0x10 {
			t.Errorf("SYSTBCR = %#x during sleep, want core standby enabled", v)
		}
		if v := mem.Peek(SMFRAM + RecordPageTable); v != 0 {
			t.Errorf("wake marker = %#x at sleep entry, want cleared", v)
		}
	}

	// Stale garbage from an earlier cycle must not leak into this one.
	mem.Load(SMFRAM+RecordPageTable, 0xdeadbeef)

	New(mem, cpu).Enter()
}

func TestClockGatedWakeSkipsRestore(t *testing.T) {
	mem := mmio.NewMem()
	cpu := &fakeCPU{}

	New(mem, cpu).Enter()

	// Marker stayed zero: no power loss, no restoration.
	want := []string{"suspend", "init"}
	if diff := cmp.Diff(want, cpu.calls); diff != "" {
		t.Errorf("call sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestPowerLossWakeRestores(t *testing.T) {
	mem := mmio.NewMem()
	cpu := &fakeCPU{}

	// The resume firmware fills the wake record only on a real power
	// loss.
	cpu.onSuspend = func() {
		mem.Load(SMFRAM+RecordControlReg, 0x00c5187d) // control register
		mem.Load(SMFRAM+RecordPageTable, 0x40004000) // page table base / marker
		mem.Load(SMFRAM+RecordPageEntry, 0x4000140e) // saved translation entry
	}

	New(mem, cpu).Enter()

	want := []string{
		"suspend",
		"init",
		"restore-pt:0x40004000:0x4000140e",
		"flush-tlb",
		"set-cr:0xc5187d",
	}
	if diff := cmp.Diff(want, cpu.calls); diff != "" {
		t.Errorf("call sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestDoneRestoresBootVectors(t *testing.T) {
	for _, powerLost := range []bool{false, true} {
		mem := mmio.NewMem()
		cpu := &fakeCPU{}
		if powerLost {
			cpu.onSuspend = func() {
				mem.Load(SMFRAM+RecordPageTable, 0x40004000)
			}
		}

		New(mem, cpu).Enter()

		// Teardown runs on every wake path.
		if v := mem.Peek(SYSTBCR); v != 0 {
			t.Errorf("powerLost=%v: SYSTBCR = %#x after return, want 0", powerLost, v)
		}
		if v := mem.Peek(SBAR); v != 0 {
			t.Errorf("powerLost=%v: SBAR = %#x after return, want 0", powerLost, v)
		}
	}
}
