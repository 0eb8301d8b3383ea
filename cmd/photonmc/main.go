// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/photonmc/config"
	"github.com/cpmech/photonmc/driver"
	"github.com/spf13/cobra"
)

func main() {

	var verbose bool

	root := &cobra.Command{
		Use:   "photonmc [config.json]",
		Short: "Monte Carlo photon transport through an acoustically modulated layered medium",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], verbose)
		},
	}
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "show full panic trace on error")

	if err := root.Execute(); err != nil {
		chk.Verbose = verbose
		io.Pfred("ERROR: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath string, verbose bool) (err error) {

	chk.Verbose = verbose

	defer func() {
		if r := recover(); r != nil {
			err = chk.Err("photonmc: %v", r)
		}
	}()

	io.PfWhite("\nphotonmc -- Monte Carlo photon transport\n\n")

	cfg, err := config.Read(cfgPath)
	if err != nil {
		return err
	}

	d, err := driver.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := d.Run(ctx); err != nil {
		return err
	}

	io.Pfgreen("\nphotonmc: done\n")
	return nil
}
