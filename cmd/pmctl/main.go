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

// pmctl inspects and drives the sh7372 power domains, either against the
// real registers through /dev/mem or against a simulated bank described by
// a YAML file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/shmobile/sh7372/pkg/log"
)

var (
	simPath        = flag.String("sim", "", "simulate the register bank described by the given YAML file")
	devMem         = flag.Bool("dev-mem", false, "drive the real registers through /dev/mem")
	debug          = flag.Bool("debug", false, "enable debug logging")
	consoleSuspend = flag.Bool("console-suspend", true, "allow the serial console's domain (A3SP) to power down; false pins it on")
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(new(statusCmd), "")
	subcommands.Register(new(onCmd), "")
	subcommands.Register(new(offCmd), "")
	subcommands.Register(new(standbyCmd), "")

	flag.Parse()
	if *debug {
		log.SetLevel(log.Debug)
	}
	os.Exit(int(subcommands.Execute(context.Background())))
}

// fail prints an error and returns the failure status.
func fail(format string, v ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "pmctl: "+format+"\n", v...)
	return subcommands.ExitFailure
}
