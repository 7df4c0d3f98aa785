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

// Package sysctest provides a simulated SYSC register bank for tests and
// the pmctl simulator.
package sysctest

import (
	"github.com/shmobile/sh7372/pkg/mmio"
	"github.com/shmobile/sh7372/pkg/sysc"
)

// Bank models the SYSC power-domain registers. A write to SPDCR or SWUCR
// latches the written bits as pending requests; each poll of the request
// register ages the pending requests, and an accepted request self-clears
// its bit and flips the domain's PSTR bit, like the hardware does.
//
// The bank only makes progress when the request register is polled, which
// is exactly how the transition paths drive it.
type Bank struct {
	mem *mmio.Mem

	// Latency maps a domain bit to the request-register poll on which
	// the request is accepted. Bits with no entry (or 0) accept on the
	// first poll.
	Latency map[uint]int

	// Stuck bits never accept a request.
	Stuck map[uint]bool

	// UpWrites and DownWrites count the writes issued to SWUCR and
	// SPDCR.
	UpWrites, DownWrites int

	pending map[uintptr]map[uint]int
}

// New returns an empty bank with all domains off.
func New() *Bank {
	b := &Bank{
		Latency: make(map[uint]int),
		Stuck:   make(map[uint]bool),
		pending: map[uintptr]map[uint]int{
			sysc.SPDCR: {},
			sysc.SWUCR: {},
		},
	}
	m := mmio.NewMem()
	m.OnWrite = b.write
	m.OnRead = b.read
	b.mem = m
	return b
}

// Port returns the register port backed by the bank.
func (b *Bank) Port() *mmio.Mem {
	return b.mem
}

// SetStatus loads the power status register directly.
func (b *Bank) SetStatus(v uint32) {
	b.mem.Load(sysc.PSTR, v)
}

// Status returns the power status register.
func (b *Bank) Status() uint32 {
	return b.mem.Peek(sysc.PSTR)
}

func (b *Bank) write(addr uintptr, old, v uint32) uint32 {
	switch addr {
	case sysc.SPDCR:
		b.DownWrites++
	case sysc.SWUCR:
		b.UpWrites++
	default:
		return v
	}
	for bit := uint(0); bit < 32; bit++ {
		if v&(1<<bit) != 0 {
			b.pending[addr][bit] = b.Latency[bit]
		}
	}
	// Request bits latch until accepted.
	return old | v
}

func (b *Bank) read(addr uintptr, stored uint32) uint32 {
	if addr != sysc.SPDCR && addr != sysc.SWUCR {
		return stored
	}
	p := b.pending[addr]
	for bit := range p {
		if stored&(1<<bit) == 0 || b.Stuck[bit] {
			continue
		}
		if left := p[bit] - 1; left > 0 {
			p[bit] = left
			continue
		}
		// Accepted: self-clear the request bit and flip PSTR.
		delete(p, bit)
		stored &^= 1 << bit
		pstr := b.mem.Peek(sysc.PSTR)
		if addr == sysc.SWUCR {
			pstr |= 1 << bit
		} else {
			pstr &^= 1 << bit
		}
		b.mem.Load(sysc.PSTR, pstr)
	}
	return stored
}
