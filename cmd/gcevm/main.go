// Package main is the entry point for the gcevm CLI.
//
// gcevm is a command-line tool for provisioning GPU virtual machines on
// Google Compute Engine. It creates instances with guest accelerators,
// installs NVIDIA drivers and the CUDA toolkit over SSH, verifies the GPU,
// and can sweep a list of zones to find one with available capacity.
//
// Commands: init, keygen, create, bootstrap, delete, sweep, doctor.
//
// For detailed usage information, run:
//
//	gcevm --help
package main

import (
	"fmt"
	"os"

	"github.com/rahilkadakia/gcevm/cmd/gcevm/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
