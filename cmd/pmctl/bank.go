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

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shmobile/sh7372/pkg/mmio"
	"github.com/shmobile/sh7372/pkg/standby"
	"github.com/shmobile/sh7372/pkg/sysc"
	"github.com/shmobile/sh7372/pkg/sysc/sysctest"
)

// bankConfig describes a simulated register bank. Domains are referred to
// by name; latency is the request-register poll on which the simulated
// hardware accepts a request.
type bankConfig struct {
	Status  uint32         `yaml:"status"`
	Latency map[string]int `yaml:"latency"`
	Stuck   []string       `yaml:"stuck"`
}

func parseBank(data []byte) (*sysctest.Bank, error) {
	var cfg bankConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing bank description: %w", err)
	}

	bits := make(map[string]uint)
	for _, d := range sysc.DefaultDomains() {
		bits[d.Name] = d.Bit
	}

	bank := sysctest.New()
	bank.SetStatus(cfg.Status)
	for name, polls := range cfg.Latency {
		bit, ok := bits[name]
		if !ok {
			return nil, fmt.Errorf("latency for unknown domain %q", name)
		}
		bank.Latency[bit] = polls
	}
	for _, name := range cfg.Stuck {
		bit, ok := bits[name]
		if !ok {
			return nil, fmt.Errorf("stuck entry for unknown domain %q", name)
		}
		bank.Stuck[bit] = true
	}
	return bank, nil
}

func loadBank(path string) (*sysctest.Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseBank(data)
}

// newPort opens the register port selected by the top-level flags.
func newPort() (mmio.Port, error) {
	switch {
	case *simPath != "" && *devMem:
		return nil, fmt.Errorf("-sim and -dev-mem are mutually exclusive")
	case *simPath != "":
		bank, err := loadBank(*simPath)
		if err != nil {
			return nil, err
		}
		return bank.Port(), nil
	case *devMem:
		return mmio.OpenDevMem([]mmio.Region{
			{Base: 0xe6100000, Size: 0x1000}, // DBG
			{Base: 0xe6150000, Size: 0x1000}, // SYSTBCR
			{Base: 0xe6180000, Size: 0x1000}, // SYSC
			{Base: standby.SMFRAM, Size: 0x1000},
		})
	default:
		return nil, fmt.Errorf("pass -sim <bank.yaml> or -dev-mem")
	}
}

// newController builds a controller with the sh7372 domain table over the
// selected port.
func newController() (*sysc.Controller, error) {
	port, err := newPort()
	if err != nil {
		return nil, err
	}
	c := sysc.New(port, sysc.Options{})
	if err := c.RegisterAll(sysc.DefaultDomains()); err != nil {
		return nil, err
	}
	if a3sp := c.Lookup("A3SP"); a3sp != nil {
		sysc.InitA3SP(a3sp, *consoleSuspend)
	}
	c.Init()
	return c, nil
}
