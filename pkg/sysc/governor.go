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

// Governor is the policy deciding whether a power-down or clock-stop is
// currently allowed. The framework consults it before requesting either
// operation; the transition state machine itself never does.
type Governor interface {
	// MayPowerDown reports whether the domain may be powered down now.
	MayPowerDown(d *Domain) bool

	// MayStopDevice reports whether the device's clocks may be stopped
	// now.
	MayStopDevice(dev *Device) bool
}

// DefaultGovernor permits both operations unconditionally.
var DefaultGovernor Governor = defaultGovernor{}

type defaultGovernor struct{}

func (defaultGovernor) MayPowerDown(*Domain) bool  { return true }
func (defaultGovernor) MayStopDevice(*Device) bool { return true }

// AlwaysOnGovernor forbids power-down; device clock-stop follows the
// default policy.
var AlwaysOnGovernor Governor = alwaysOnGovernor{}

type alwaysOnGovernor struct{}

func (alwaysOnGovernor) MayPowerDown(*Domain) bool { return false }
func (alwaysOnGovernor) MayStopDevice(*Device) bool { return true }
