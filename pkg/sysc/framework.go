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

// Framework is the generic power-domain framework this layer plugs into.
// It owns the domain graph, reference counting and lock discipline; the
// controller calls back into it when a dependent parent must change state.
type Framework interface {
	// PowerOn forces the named domain on, synchronously. Idempotent when
	// the domain is already on.
	PowerOn(name string) error

	// QueuePowerOff marks the named domain as a power-down candidate.
	// Whether the domain actually goes down is the framework's decision,
	// made against its own reference counts and the domain's policy.
	QueuePowerOff(name string)
}

// directFramework is the in-process fallback used when no external
// framework is attached: power-on is immediate, and the power-down
// candidate path applies the StayOn and governor gates before reaching the
// state machine. It does no reference counting.
type directFramework struct {
	c *Controller
}

// PowerOn implements Framework.PowerOn.
func (f directFramework) PowerOn(name string) error {
	d := f.c.Lookup(name)
	if d == nil {
		return &UnknownDomainError{Name: name}
	}
	return f.c.PowerUp(d)
}

// QueuePowerOff implements Framework.QueuePowerOff.
func (f directFramework) QueuePowerOff(name string) {
	d := f.c.Lookup(name)
	if d == nil {
		return
	}
	// StayOn domains and domains whose governor forbids it must never
	// reach PowerDown from this path.
	if d.StayOn || !d.governor().MayPowerDown(d) {
		return
	}
	f.c.PowerDown(d)
}

// UnknownDomainError reports a domain name with no registry entry.
type UnknownDomainError struct {
	Name string
}

// Error implements error.Error.
func (e *UnknownDomainError) Error() string {
	return "unknown power domain " + e.Name
}
