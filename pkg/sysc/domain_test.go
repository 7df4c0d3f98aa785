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

package sysc_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/shmobile/sh7372/pkg/log"
	"github.com/shmobile/sh7372/pkg/sysc"
	"github.com/shmobile/sh7372/pkg/sysc/sysctest"
)

func TestDefaultDomains(t *testing.T) {
	bits := make(map[string]uint)
	for _, d := range sysc.DefaultDomains() {
		bits[d.Name] = d.Bit
	}
	want := map[string]uint{
		"A4LC": 1,
		"A4MP": 2,
		"D4":   3,
		"A4R":  5,
		"A3RV": 6,
		"A3RI": 8,
		"A3SP": 11,
		"A3SG": 13,
	}
	if diff := cmp.Diff(want, bits); diff != "" {
		t.Errorf("domain bit map mismatch (-want +got):\n%s", diff)
	}

	seen := make(map[uint]string)
	for name, bit := range bits {
		if other, ok := seen[bit]; ok {
			t.Errorf("domains %s and %s share bit %d", name, other, bit)
		}
		seen[bit] = name
	}
}

func TestDefaultDomainsDependency(t *testing.T) {
	for _, d := range sysc.DefaultDomains() {
		want := ""
		if d.Name == "A3RV" {
			want = "A4LC"
		}
		if d.DependentParent != want {
			t.Errorf("%s: DependentParent = %q, want %q", d.Name, d.DependentParent, want)
		}
	}
}

func TestRegisterRejectsDuplicateBit(t *testing.T) {
	c := sysc.New(sysctest.New().Port(), sysc.Options{})
	if err := c.Register(&sysc.Domain{Name: "A4LC", Bit: 1}); err != nil {
		t.Fatalf("Register(A4LC): %v", err)
	}
	if err := c.Register(&sysc.Domain{Name: "X", Bit: 1}); err == nil {
		t.Error("Register should reject a duplicate bit")
	}
	if err := c.Register(&sysc.Domain{Name: "A4LC", Bit: 2}); err == nil {
		t.Error("Register should reject a duplicate name")
	}
	if err := c.Register(&sysc.Domain{Name: "Y", Bit: 32}); err == nil {
		t.Error("Register should reject a bit beyond the register width")
	}
}

func TestDomainsOrdered(t *testing.T) {
	c := sysc.New(sysctest.New().Port(), sysc.Options{})
	if err := c.RegisterAll(sysc.DefaultDomains()); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	var names []string
	for _, d := range c.Domains() {
		names = append(names, d.Name)
	}
	want := []string{"A4LC", "A4MP", "D4", "A4R", "A3RV", "A3RI", "A3SP", "A3SG"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("domain order mismatch (-want +got):\n%s", diff)
	}
}

func TestInitA3SP(t *testing.T) {
	a3sp := &sysc.Domain{Name: "A3SP", Bit: 11}

	sysc.InitA3SP(a3sp, true)
	if a3sp.StayOn {
		t.Error("console suspend enabled should leave A3SP free to power down")
	}

	sysc.InitA3SP(a3sp, false)
	if !a3sp.StayOn {
		t.Error("no_console_suspend should pin A3SP on")
	}

	// Once pinned, the flag only tightens.
	sysc.InitA3SP(a3sp, true)
	if !a3sp.StayOn {
		t.Error("StayOn must never be cleared once set")
	}
}

func TestGovernors(t *testing.T) {
	d := &sysc.Domain{Name: "A4LC", Bit: 1}
	dev := &sysc.Device{Name: "lcdc"}

	if !sysc.DefaultGovernor.MayPowerDown(d) {
		t.Error("default governor should permit power-down")
	}
	if sysc.AlwaysOnGovernor.MayPowerDown(d) {
		t.Error("always-on governor must forbid power-down")
	}
	if !sysc.AlwaysOnGovernor.MayStopDevice(dev) {
		t.Error("always-on governor should still permit clock-stop")
	}
}

func TestInitKicksDBG(t *testing.T) {
	bank := sysctest.New()
	c := sysc.New(bank.Port(), sysc.Options{})
	c.Init()

	if got := bank.Port().Peek(0xe6100040); got != 0x0000a501 {
		t.Errorf("DBGREG9 = %#x, want 0xa501", got)
	}
	if got := bank.Port().Peek(0xe6100020); got != 0 {
		t.Errorf("DBGREG1 = %#x, want 0", got)
	}
}

func TestActiveWakeup(t *testing.T) {
	c := sysc.New(sysctest.New().Port(), sysc.Options{})
	if !c.ActiveWakeup(&sysc.Device{Name: "keysc"}) {
		t.Error("ActiveWakeup must always report true")
	}
}

// captureEmitter collects emitted log lines.
type captureEmitter struct {
	lines []string
}

func (e *captureEmitter) Emit(level log.Level, timestamp time.Time, format string, v ...any) {
	e.lines = append(e.lines, format)
}

func TestNoDebugSuppressesTraces(t *testing.T) {
	bank := sysctest.New()
	em := &captureEmitter{}
	c := sysc.New(bank.Port(), sysc.Options{
		Logger: &log.BasicLogger{Level: log.Debug, Emitter: em},
		Delay:  func(time.Duration) {},
	})
	if err := c.RegisterAll(sysc.DefaultDomains()); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}

	if err := c.PowerUp(c.Lookup("A3SP")); err != nil {
		t.Fatalf("PowerUp(A3SP): %v", err)
	}
	if len(em.lines) != 0 {
		t.Errorf("A3SP is no-debug but traced %d lines", len(em.lines))
	}

	if err := c.PowerUp(c.Lookup("A4MP")); err != nil {
		t.Fatalf("PowerUp(A4MP): %v", err)
	}
	if len(em.lines) != 1 || !strings.Contains(em.lines[0], "Power on") {
		t.Errorf("A4MP power-up traced %v, want one power-on line", em.lines)
	}
}
