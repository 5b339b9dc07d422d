// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli"

	"github.com/diffeo/go-draftable/draftable"
)

var exportCommands = cli.Command{
	Name:  "export",
	Usage: "work with rendered exports of comparisons",
	Subcommands: []cli.Command{
		exportCreate,
		exportShow,
	},
}

var exportCreate = cli.Command{
	Name:      "create",
	Usage:     "start rendering an export of a ready comparison",
	ArgsUsage: "comparison",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "kind",
			Value: draftable.CombinedExport.String(),
			Usage: "rendering style: single_page, combined, left, or right",
		},
		cli.BoolFlag{
			Name:  "wait",
			Usage: "wait for the export to finish rendering",
		},
		cli.DurationFlag{
			Name:  "timeout",
			Value: 5 * time.Minute,
			Usage: "give up waiting after this long",
		},
	},
	Action: func(c *cli.Context) error {
		comparison, err := identifierArg(c)
		if err != nil {
			return err
		}
		var kind draftable.ExportKind
		if err := kind.UnmarshalText([]byte(c.String("kind"))); err != nil {
			return err
		}

		export, err := client.CreateExport(comparison, kind)
		if err != nil {
			return err
		}
		if c.Bool("wait") {
			export, err = waitForExport(export, c.Duration("timeout"))
			if err != nil {
				return err
			}
		}
		printExport(export)
		return nil
	},
}

var exportShow = cli.Command{
	Name:      "show",
	Usage:     "show the details of one export",
	ArgsUsage: "identifier",
	Action: func(c *cli.Context) error {
		identifier, err := identifierArg(c)
		if err != nil {
			return err
		}
		export, err := client.Export(identifier)
		if err != nil {
			return err
		}
		printExport(export)
		return nil
	},
}

// waitForExport polls an export until it is ready.
func waitForExport(export draftable.Export, timeout time.Duration) (draftable.Export, error) {
	deadline := time.Now().Add(timeout)
	for !export.Ready {
		if time.Now().After(deadline) {
			return export, fmt.Errorf("export %q was not ready after %v", export.Identifier, timeout)
		}
		time.Sleep(500 * time.Millisecond)
		var err error
		export, err = client.Export(export.Identifier)
		if err != nil {
			return export, err
		}
	}
	return export, nil
}

func printExport(e draftable.Export) {
	fmt.Printf("Identifier: %s\n", e.Identifier)
	fmt.Printf("Comparison: %s\n", e.Comparison)
	fmt.Printf("Kind:       %s\n", e.Kind)
	switch {
	case !e.Ready:
		fmt.Printf("State:      pending\n")
	case e.HasFailed():
		fmt.Printf("State:      failed\n")
		fmt.Printf("Error:      %s\n", e.ErrorMessage)
	default:
		fmt.Printf("State:      ready\n")
		fmt.Printf("URL:        %s\n", e.URL)
	}
}
