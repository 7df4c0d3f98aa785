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

// Package standby implements the sh7372 core standby sequence: the CPU
// sleep mode in which the core itself may fully lose power.
//
// The sequence runs strictly on the CPU being put to sleep, with
// interrupts and preemption disabled for its whole duration, and is not
// reentrant. There is no error path: either the CPU returns from sleep and
// the sequence completes, or it never returns at all.
package standby

import (
	"github.com/shmobile/sh7372/pkg/mmio"
)

// Standby-related register physical addresses.
const (
	// SMFRAM is the power-retained scratch memory holding the wake
	// record.
	SMFRAM uintptr = 0xe6a70000

	// SYSTBCR is the system timer-base control register; bit 4 enables
	// core standby.
	SYSTBCR uintptr = 0xe6150024

	// SBAR is the reset vector redirect register.
	SBAR uintptr = 0xe6180020

	// APARMBAREA configures the translation window covering the resume
	// entry point.
	APARMBAREA uintptr = 0xe6f10020
)

const systbcrStandby = 0x10

// Scratch wake record offsets within SMFRAM, a contract shared with the
// resume firmware. The page-table word doubles as the wake outcome marker:
// it is cleared before sleep and written by the firmware only when the core
// actually lost power.
const (
	RecordControlReg uintptr = 0x38
	RecordPageTable  uintptr = 0x3c
	RecordPageEntry  uintptr = 0x40
)

// CPU abstracts the architecture-specific steps of the standby sequence.
type CPU interface {
	// ResumeEntry returns the physical address of the resume entry
	// point, programmed into the reset vector before sleep.
	ResumeEntry() uintptr

	// Suspend executes the core sleep instruction sequence. It returns
	// only when the CPU resumes execution, on either wake path.
	Suspend()

	// Init reinitializes the core state clobbered by standby entry. Runs
	// immediately after Suspend returns, before anything else is
	// touched.
	Init()

	// RestorePageTable writes the saved translation entry back to the
	// page-table word at base.
	RestorePageTable(base uintptr, entry uint32)

	// FlushTLB invalidates the entire translation cache.
	FlushTLB()

	// SetControlRegister restores the architectural control register.
	SetControlRegister(v uint32)
}

// Standby drives core standby entry and recovery for one CPU.
type Standby struct {
	port mmio.Port
	cpu  CPU
}

// New returns a Standby over the given register port and CPU.
func New(port mmio.Port, cpu CPU) *Standby {
	return &Standby{port: port, cpu: cpu}
}

// Enter puts the CPU into core standby and recovers it on wake. It returns
// once the CPU is running normally again; returning at all is the success
// condition.
func (s *Standby) Enter() {
	rec := record{s.port}

	// Arm: route the first post-wake instruction fetch into the resume
	// entry point and enable the standby mode.
	s.port.Write32(APARMBAREA, 0) // translate 4k
	s.port.Write32(SBAR, uint32(s.cpu.ResumeEntry()))
	s.port.Write32(SYSTBCR, systbcrStandby)
	rec.clearMarker()

	// Sleep. Suspend does not return until a wake event, whether the
	// core was merely clock-gated or came back through the reset vector.
	s.cpu.Suspend()
	s.cpu.Init()

	// Recover: a non-zero page table address means the core really lost
	// power, so the translation state from before the sleep is gone.
	if base := rec.pageTableBase(); base != 0 {
		s.cpu.RestorePageTable(uintptr(base), rec.pageTableEntry())
		s.cpu.FlushTLB()
		s.cpu.SetControlRegister(rec.controlRegister())
	}

	// Restore normal boot vectors unconditionally, whichever wake path
	// ran, so a later unrelated reset is not misrouted into the resume
	// entry.
	s.port.Write32(SYSTBCR, 0)
	s.port.Write32(SBAR, 0)
}

// record is the scratch wake record. Its contents are meaningful only
// within a single sleep/wake cycle and are stale at any other time.
type record struct {
	port mmio.Port
}

func (r record) clearMarker() {
	r.port.Write32(SMFRAM+RecordPageTable, 0)
}

func (r record) pageTableBase() uint32 {
	return r.port.Read32(SMFRAM + RecordPageTable)
}

func (r record) pageTableEntry() uint32 {
	return r.port.Read32(SMFRAM + RecordPageEntry)
}

func (r record) controlRegister() uint32 {
	return r.port.Read32(SMFRAM + RecordControlReg)
}
