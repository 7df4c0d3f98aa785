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

// Package mmio provides access to memory-mapped hardware registers.
//
// All register traffic in this module flows through the Port interface, so
// that the hardware can be replaced by a simulated register bank. DevMem
// binds a Port to real physical addresses via /dev/mem; Mem is the in-memory
// implementation used by tests and the simulator.
package mmio

import (
	"fmt"
)

// Port is a 32-bit register access port addressed by physical address.
//
// Ports do not synchronize callers. The power-domain registers served
// through a Port are owned by a single control path at a time; the caller
// holds whatever lock makes that true.
type Port interface {
	// Read32 returns the register word at the given physical address.
	Read32(addr uintptr) uint32

	// Write32 stores v to the register word at the given physical address.
	Write32(addr uintptr, v uint32)
}

// Mem is an in-memory Port. Unwritten words read as zero.
//
// The optional hooks run on every access and let a test model hardware
// behavior (self-clearing request bits, read side effects) without a
// dedicated fake per scenario.
type Mem struct {
	words map[uintptr]uint32

	// OnRead, if non-nil, maps the stored value to the value returned to
	// the caller.
	OnRead func(addr uintptr, stored uint32) uint32

	// OnWrite, if non-nil, maps the written value to the value stored.
	OnWrite func(addr uintptr, old, v uint32) uint32
}

// NewMem returns an empty in-memory port.
func NewMem() *Mem {
	return &Mem{words: make(map[uintptr]uint32)}
}

// Read32 implements Port.Read32.
func (m *Mem) Read32(addr uintptr) uint32 {
	v := m.words[addr]
	if m.OnRead != nil {
		v = m.OnRead(addr, v)
		m.words[addr] = v
	}
	return v
}

// Write32 implements Port.Write32.
func (m *Mem) Write32(addr uintptr, v uint32) {
	if m.OnWrite != nil {
		v = m.OnWrite(addr, m.words[addr], v)
	}
	m.words[addr] = v
}

// Load sets a register word directly, bypassing OnWrite.
func (m *Mem) Load(addr uintptr, v uint32) {
	m.words[addr] = v
}

// Peek returns a register word directly, bypassing OnRead.
func (m *Mem) Peek(addr uintptr) uint32 {
	return m.words[addr]
}

// Region describes one physical register region to map.
type Region struct {
	// Base is the physical base address. Must be page aligned.
	Base uintptr

	// Size is the region length in bytes. Must be a multiple of the page
	// size.
	Size uintptr
}

func (r Region) String() string {
	return fmt.Sprintf("[%#x, %#x)", r.Base, r.Base+r.Size)
}
