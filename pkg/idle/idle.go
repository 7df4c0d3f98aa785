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

// Package idle exposes the core standby procedure to the CPU-idle and
// system-suspend frameworks. Both shims are pure adapters: they carry
// metadata and invoke the procedure, nothing more.
package idle

import (
	"time"

	"github.com/shmobile/sh7372/pkg/standby"
)

// State is one selectable entry in the CPU-idle menu. ExitLatency and
// TargetResidency are hints for the idle governor deciding whether the
// state is worth entering.
type State struct {
	Name            string
	Desc            string
	ExitLatency     time.Duration
	TargetResidency time.Duration

	// Enter enters the state. It returns when the CPU is running again.
	Enter func()
}

// Menu is the ordered set of idle states offered to the idle governor.
type Menu struct {
	states []State
}

// Add appends a state to the menu.
func (m *Menu) Add(s State) {
	m.states = append(m.states, s)
}

// States returns the registered states, shallowest first.
func (m *Menu) States() []State {
	return m.states
}

// RegisterCoreStandby adds the C2 core-standby state to the menu.
func RegisterCoreStandby(m *Menu, s *standby.Standby) {
	m.Add(State{
		Name:            "C2",
		Desc:            "Core Standby Mode",
		ExitLatency:     10 * time.Microsecond,
		TargetResidency: 30 * time.Microsecond,
		Enter:           s.Enter,
	})
}

// SuspendState identifies the system sleep state being entered.
type SuspendState int

const (
	// SuspendStandby is the shallow system standby state.
	SuspendStandby SuspendState = iota

	// SuspendMem is the deepest supported suspend state.
	SuspendMem
)

// SuspendOps is the hook table the system suspend framework invokes.
type SuspendOps struct {
	// Enter enters the given system sleep state.
	Enter func(state SuspendState) error
}

// BindSuspend points ops at the core standby procedure, which serves every
// supported suspend state on this hardware.
func BindSuspend(ops *SuspendOps, s *standby.Standby) {
	ops.Enter = func(SuspendState) error {
		s.Enter()
		return nil
	}
}
