// Package main is the relay node entry point: it resolves configuration,
// wires the router, processors, and metrics together, and serves until
// signaled (cmd/authn's installSignalHandler shape, adapted to cobra).
/*
 * Copyright (c) 2024, Cloud Robotics Project. All rights reserved.
 */
package main

import (
	"os"

	"github.com/cloudrobotics/relaycore/cmn/nlog"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		nlog.Errorf("%s", err)
		os.Exit(1)
	}
}
