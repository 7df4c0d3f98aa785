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

// Package sysc drives the sh7372 system controller's power-domain tree.
//
// Each power domain is a cluster of on-chip hardware behind one power
// switch, addressed by a single bit in the SYSC status and request
// registers. The package implements the per-domain power transition
// sequence, the A3RV/A4LC dependency rule, and the device stop/start
// bracketing around the external clock collaborator.
//
// The package performs no locking of its own. The generic power-domain
// framework that calls in here owns reference counting and guarantees at
// most one transition in flight per domain.
package sysc

import (
	"fmt"
	"sort"
	"time"

	"github.com/shmobile/sh7372/pkg/log"
	"github.com/shmobile/sh7372/pkg/mmio"
)

// SYSC register physical addresses.
const (
	// SPDCR is the power-down request register. Writing a domain's bit
	// requests power-down; the hardware self-clears the bit on acceptance.
	SPDCR uintptr = 0xe6180008

	// SWUCR is the power-up request register, with the same self-clearing
	// acceptance contract as SPDCR.
	SWUCR uintptr = 0xe6180014

	// PSTR is the power status register: bit N is set while domain N is
	// powered.
	PSTR uintptr = 0xe6180080
)

// DBG registers, poked once at init so the DBG hardware block lets SYSC
// accept requests.
const (
	dbgreg1 uintptr = 0xe6100020
	dbgreg9 uintptr = 0xe6100040
)

const (
	// pstrRetries is the per-phase polling budget for the request
	// registers.
	pstrRetries = 100

	// pstrDelay is the inter-poll delay during the power-up settling
	// phase.
	pstrDelay = 10 * time.Microsecond

	// exhaustedLogEvery throttles the rejected-power-down warning. The
	// framework re-queues rejected candidates, so a wedged domain hits
	// that path on every sweep.
	exhaustedLogEvery = time.Second
)

// Options configures a Controller. The zero value selects the in-process
// framework, a no-op clock controller, the global logger and real delays.
type Options struct {
	// Framework is the external generic power-domain framework. When nil
	// the controller applies the framework-side gating rules itself.
	Framework Framework

	// Clocks is the device/clock-management collaborator.
	Clocks ClockController

	// Logger receives transition diagnostics.
	Logger log.Logger

	// Delay is the inter-poll delay hook, for tests that cannot spend
	// real settling time.
	Delay func(time.Duration)
}

// Controller owns the SYSC register port and the domain registry.
type Controller struct {
	port      mmio.Port
	framework Framework
	clocks    ClockController
	logger    log.Logger
	limited   log.Logger
	delay     func(time.Duration)

	domains map[string]*Domain
}

// New returns a Controller over the given register port.
func New(port mmio.Port, opts Options) *Controller {
	c := &Controller{
		port:      port,
		framework: opts.Framework,
		clocks:    opts.Clocks,
		logger:    opts.Logger,
		delay:     opts.Delay,
		domains:   make(map[string]*Domain),
	}
	if c.framework == nil {
		c.framework = directFramework{c}
	}
	if c.clocks == nil {
		c.clocks = nopClocks{}
	}
	if c.logger == nil {
		c.logger = log.Log()
	}
	c.limited = log.RateLimitedLogger(c.logger, exhaustedLogEvery)
	if c.delay == nil {
		c.delay = time.Sleep
	}
	return c
}

// Init unlocks the DBG hardware block so it can kick SYSC. Must run once
// before any transition is requested.
func (c *Controller) Init() {
	c.port.Write32(dbgreg9, 0x0000a500)
	c.port.Write32(dbgreg9, 0x0000a501)
	c.port.Write32(dbgreg1, 0x00000000)
}

// Register adds a domain to the registry. Domain bits must be pairwise
// distinct and fit the 32-bit register width.
func (c *Controller) Register(d *Domain) error {
	if d.Bit >= 32 {
		return fmt.Errorf("domain %s: bit %d exceeds register width", d.Name, d.Bit)
	}
	if _, ok := c.domains[d.Name]; ok {
		return fmt.Errorf("domain %s already registered", d.Name)
	}
	for _, other := range c.domains {
		if other.Bit == d.Bit {
			return fmt.Errorf("domain %s: bit %d already taken by %s", d.Name, d.Bit, other.Name)
		}
	}
	c.domains[d.Name] = d
	return nil
}

// RegisterAll registers each domain in turn.
func (c *Controller) RegisterAll(domains []*Domain) error {
	for _, d := range domains {
		if err := c.Register(d); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the named domain, or nil.
func (c *Controller) Lookup(name string) *Domain {
	return c.domains[name]
}

// Domains returns the registered domains ordered by bit position.
func (c *Controller) Domains() []*Domain {
	out := make([]*Domain, 0, len(c.domains))
	for _, d := range c.domains {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Bit < out[j].Bit })
	return out
}

// Status returns the raw power status register.
func (c *Controller) Status() uint32 {
	return c.port.Read32(PSTR)
}

// ActiveWakeup reports whether the device may wake the system while its
// domain is powered down. Always true on this hardware.
func (c *Controller) ActiveWakeup(dev *Device) bool {
	return true
}
