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

package sysc

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// Result classifies a single transition attempt.
type Result int

const (
	// Completed means the hardware accepted the request within the
	// polling budget.
	Completed Result = iota

	// TimedOut means the request bit never self-cleared.
	TimedOut
)

// Outcome is the result of one power-up or power-down attempt, carrying the
// final power status snapshot for diagnostics.
type Outcome struct {
	Result Result
	Status uint32
}

// TransitionError reports a power-up request the hardware never
// acknowledged. The domain is left in an indeterminate, likely-off state;
// the caller may simply invoke PowerUp again.
type TransitionError struct {
	Domain string
	Mask   uint32
	Status uint32
}

// Error implements error.Error.
func (e *TransitionError) Error() string {
	return fmt.Sprintf("power domain %s: power-up request 0x%08x not accepted, PSTR = 0x%08x", e.Domain, e.Mask, e.Status)
}

// Is makes the error match its I/O errno class, so that
// errors.Is(err, unix.EIO) holds.
func (e *TransitionError) Is(target error) bool {
	return target == unix.EIO
}

// Errno returns the errno class of the error.
func (e *TransitionError) Errno() unix.Errno {
	return unix.EIO
}

// poll reads a register until done reports true, up to attempts reads. A
// non-zero delay is inserted after each unsatisfied read through the
// controller's delay hook. It returns the last observed value and whether
// the predicate was satisfied.
//
// There is deliberately no deadline: the iteration budget is the timeout.
// The budgets below match the documented worst-case acceptance times of the
// hardware, and callers run in interrupt-safe sections where a tight spin
// is the correct behavior.
func (c *Controller) poll(read func() uint32, done func(uint32) bool, attempts int, delay time.Duration) (uint32, bool) {
	var v uint32
	for i := 0; i < attempts; i++ {
		v = read()
		if done(v) {
			return v, true
		}
		if delay != 0 {
			c.delay(delay)
		}
	}
	return v, false
}

// requestPowerDown issues and polls one power-down request.
func (c *Controller) requestPowerDown(mask uint32) Outcome {
	c.port.Write32(SPDCR, mask)

	_, ok := c.poll(
		func() uint32 { return c.port.Read32(SPDCR) },
		func(v uint32) bool { return v&mask == 0 },
		pstrRetries, 0)

	r := Completed
	if !ok {
		r = TimedOut
	}
	return Outcome{Result: r, Status: c.port.Read32(PSTR)}
}

// requestPowerUp issues and polls one power-up request. Power rails need
// settling time, so the first half of the budget polls with a fixed delay
// and the second half busy-polls.
func (c *Controller) requestPowerUp(mask uint32) Outcome {
	c.port.Write32(SWUCR, mask)

	read := func() uint32 { return c.port.Read32(SWUCR) }
	accepted := func(v uint32) bool { return v&mask == 0 }

	_, ok := c.poll(read, accepted, pstrRetries, pstrDelay)
	if !ok {
		_, ok = c.poll(read, accepted, pstrRetries, 0)
	}

	r := Completed
	if !ok {
		r = TimedOut
	}
	return Outcome{Result: r, Status: c.port.Read32(PSTR)}
}

// PowerDown powers the domain off. It never fails: request-register
// acceptance is best-effort telemetry, and PSTR remains the authoritative
// state for the caller to re-check.
//
// Callers are responsible for honoring StayOn and the domain's governor
// before requesting power-down; the state machine does not re-check them.
func (c *Controller) PowerDown(d *Domain) error {
	if d.Suspend != nil {
		d.Suspend()
	}

	mask := d.mask()
	if c.port.Read32(PSTR)&mask != 0 {
		out := c.requestPowerDown(mask)
		if out.Result == TimedOut && !d.NoDebug {
			c.limited.Warningf("%s: power-down request 0x%08x not accepted, PSTR = 0x%08x", d.Name, mask, out.Status)
		}
		if !d.NoDebug {
			c.logger.Debugf("%s: Power off, 0x%08x -> PSTR = 0x%08x", d.Name, mask, out.Status)
		}
	} else if !d.NoDebug {
		c.logger.Debugf("%s: Power off, 0x%08x -> PSTR = 0x%08x", d.Name, mask, c.port.Read32(PSTR))
	}

	// A3RV going down makes A4LC a candidate; the decision whether the
	// parent may actually go down stays with the framework, since other
	// consumers may still need it.
	if d.DependentParent != "" {
		c.framework.QueuePowerOff(d.DependentParent)
	}

	return nil
}

// PowerUp powers the domain on. Already-on domains short-circuit to
// success without issuing a request. A request the hardware never accepts
// is a hard failure of I/O class.
func (c *Controller) PowerUp(d *Domain) error {
	mask := d.mask()
	if c.port.Read32(PSTR)&mask == 0 {
		out := c.requestPowerUp(mask)
		if out.Result == TimedOut {
			return &TransitionError{Domain: d.Name, Mask: mask, Status: out.Status}
		}
		if d.Resume != nil {
			d.Resume()
		}
		if !d.NoDebug {
			c.logger.Debugf("%s: Power on, 0x%08x -> PSTR = 0x%08x", d.Name, mask, out.Status)
		}
	}

	// The domain's logic depends on its parent being powered; enforce
	// that eagerly, before returning to the caller. PowerOn is idempotent
	// if the parent is already on.
	if d.DependentParent != "" {
		if err := c.framework.PowerOn(d.DependentParent); err != nil {
			return err
		}
	}

	return nil
}
