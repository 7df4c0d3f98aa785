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

// Device is a peripheral attached to a power domain. Devices are owned by
// the external framework; the controller only drives their stop/start
// bracketing.
type Device struct {
	// Name identifies the device in diagnostics.
	Name string

	// Clocks names the device clocks managed by the clock collaborator.
	// A device registered with no clocks is given the default clock by
	// AddDevice.
	Clocks []string

	// Stop runs before the device's clocks are suspended.
	Stop func() error

	// Start runs after the device's clocks have resumed.
	Start func() error

	domain *Domain
}

// Domain returns the domain the device is attached to, or nil.
func (dev *Device) Domain() *Domain {
	return dev.domain
}

// ClockController is the device/clock-management collaborator. The
// controller never manages clock trees itself.
type ClockController interface {
	// Suspend stops the device's clocks.
	Suspend(dev *Device) error

	// Resume restarts the device's clocks.
	Resume(dev *Device) error
}

// nopClocks is the ClockController used when none is attached.
type nopClocks struct{}

func (nopClocks) Suspend(*Device) error { return nil }
func (nopClocks) Resume(*Device) error  { return nil }

// AddDevice attaches dev to the domain. A device declaring no clocks gets
// the default clock entry so the clock collaborator still sees it.
func (c *Controller) AddDevice(d *Domain, dev *Device) {
	dev.domain = d
	d.devices = append(d.devices, dev)
	if len(dev.Clocks) == 0 {
		dev.Clocks = []string{""}
	}
}

// StopDevice stops dev on behalf of its domain: the device's own stop hook
// runs first, then the clocks are suspended. A hook failure propagates
// without touching the clocks.
func (c *Controller) StopDevice(dev *Device) error {
	if dev.Stop != nil {
		if err := dev.Stop(); err != nil {
			return err
		}
	}
	return c.clocks.Suspend(dev)
}

// StartDevice starts dev: clocks resume first, so the device's start hook
// never runs without them; then the hook runs. Mirror image of StopDevice.
func (c *Controller) StartDevice(dev *Device) error {
	if err := c.clocks.Resume(dev); err != nil {
		return err
	}
	if dev.Start != nil {
		return dev.Start()
	}
	return nil
}
