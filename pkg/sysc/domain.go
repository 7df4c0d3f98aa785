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

// Domain describes one gateable power island. Domains are created once at
// platform bring-up and live for the life of the process.
type Domain struct {
	// Name identifies the domain in diagnostics.
	Name string

	// Bit is the domain's bit position in PSTR/SPDCR/SWUCR. Unique per
	// domain.
	Bit uint

	// StayOn forbids power-down for this domain. Once set it stays set;
	// see InitA3SP.
	StayOn bool

	// NoDebug suppresses transition traces for noisy, always-busy
	// domains.
	NoDebug bool

	// Governor decides whether power-down and clock-stop are currently
	// permissible. Nil selects DefaultGovernor.
	Governor Governor

	// DependentParent names a domain that must be forced on whenever this
	// domain powers on, and becomes a power-down candidate once this
	// domain powers off. A name-based reference into the registry, never
	// an owning link.
	DependentParent string

	// Suspend runs before the domain's power-down request, for domains
	// that must save extra hardware state first.
	Suspend func()

	// Resume runs after the domain's power-up completes, restoring
	// whatever Suspend saved.
	Resume func()

	devices []*Device
}

func (d *Domain) mask() uint32 {
	return 1 << d.Bit
}

func (d *Domain) governor() Governor {
	if d.Governor != nil {
		return d.Governor
	}
	return DefaultGovernor
}

// Devices returns the devices attached to the domain.
func (d *Domain) Devices() []*Device {
	return d.devices
}

// DefaultDomains returns the sh7372 power domain set. The A4R
// interrupt-controller save/restore hooks are attached by the platform
// after construction.
func DefaultDomains() []*Domain {
	return []*Domain{
		{Name: "A4LC", Bit: 1},
		{Name: "A4MP", Bit: 2},
		{Name: "D4", Bit: 3},
		{Name: "A4R", Bit: 5, Governor: AlwaysOnGovernor, StayOn: true},
		// A3RV's render logic lives behind A4LC; see transition.go.
		{Name: "A3RV", Bit: 6, DependentParent: "A4LC"},
		{Name: "A3RI", Bit: 8},
		{Name: "A3SP", Bit: 11, Governor: AlwaysOnGovernor, NoDebug: true},
		{Name: "A3SG", Bit: 13},
	}
}

// InitA3SP applies the serial console policy: the SCIF console hardware
// lives in A3SP, so the domain is pinned on unless console suspend is
// enabled. The flag is applied once at init and only ever tightens.
func InitA3SP(a3sp *Domain, consoleSuspendEnabled bool) {
	if !consoleSuspendEnabled {
		a3sp.StayOn = true
	}
}
