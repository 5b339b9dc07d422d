// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli"
)

var viewerURL = cli.Command{
	Name:      "viewer-url",
	Usage:     "print a browser URL for the comparison viewer",
	ArgsUsage: "identifier",
	Flags: []cli.Flag{
		cli.DurationFlag{
			Name:  "valid-for",
			Value: 30 * time.Minute,
			Usage: "lifetime of the signed URL for a private comparison",
		},
		cli.BoolFlag{
			Name:  "wait",
			Usage: "make the page wait for the comparison instead of reporting an error",
		},
	},
	Action: func(c *cli.Context) error {
		identifier, err := identifierArg(c)
		if err != nil {
			return err
		}
		// Public comparisons get a permanent URL; private ones a
		// signed, expiring one.
		comparison, err := client.Comparison(identifier)
		if err != nil {
			return err
		}
		var url string
		if comparison.Public {
			url, err = client.PublicViewerURL(identifier, c.Bool("wait"))
		} else {
			url, err = client.SignedViewerURLFor(identifier, c.Duration("valid-for"), c.Bool("wait"))
		}
		if err != nil {
			return err
		}
		fmt.Println(url)
		return nil
	},
}
