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

package mmio

import (
	"testing"
)

func TestMemZeroValueReads(t *testing.T) {
	m := NewMem()
	if v := m.Read32(0xe6180080); v != 0 {
		t.Errorf("unwritten word reads %#x, want 0", v)
	}
}

func TestMemReadBack(t *testing.T) {
	m := NewMem()
	m.Write32(0xe6180014, 0x20)
	if v := m.Read32(0xe6180014); v != 0x20 {
		t.Errorf("read back %#x, want 0x20", v)
	}
}

func TestMemOnWrite(t *testing.T) {
	m := NewMem()
	// Model a write-one-to-set register.
	m.OnWrite = func(addr uintptr, old, v uint32) uint32 {
		return old | v
	}
	m.Write32(0x100, 0x1)
	m.Write32(0x100, 0x4)
	if v := m.Read32(0x100); v != 0x5 {
		t.Errorf("got %#x, want 0x5", v)
	}
}

func TestMemOnRead(t *testing.T) {
	m := NewMem()
	m.Load(0x200, 0x3)
	// Model a self-clearing request bit: each read drops the low bit.
	m.OnRead = func(addr uintptr, stored uint32) uint32 {
		return stored &^ 0x1
	}
	if v := m.Read32(0x200); v != 0x2 {
		t.Errorf("first read %#x, want 0x2", v)
	}
	if v := m.Peek(0x200); v != 0x2 {
		t.Errorf("stored value after read %#x, want 0x2", v)
	}
}
