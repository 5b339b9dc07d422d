// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/urfave/cli"

	"github.com/diffeo/go-draftable/draftable"
)

var listComparisons = cli.Command{
	Name:  "list",
	Usage: "list the comparisons in the account",
	Action: func(c *cli.Context) error {
		comparisons, err := client.AllComparisons()
		if err != nil {
			return err
		}
		for _, comparison := range comparisons {
			fmt.Printf("%-24s %-8s %s\n", comparison.Identifier,
				comparisonState(comparison),
				comparison.CreationTime.Format(time.RFC3339))
		}
		return nil
	},
}

var showComparison = cli.Command{
	Name:      "show",
	Usage:     "show the details of one comparison",
	ArgsUsage: "identifier",
	Action: func(c *cli.Context) error {
		identifier, err := identifierArg(c)
		if err != nil {
			return err
		}
		comparison, err := client.Comparison(identifier)
		if err != nil {
			return err
		}
		printComparison(comparison)
		return nil
	},
}

var createComparison = cli.Command{
	Name:  "create",
	Usage: "create a new comparison",
	Flags: append(append(sideFlags("left"), sideFlags("right")...),
		cli.StringFlag{
			Name:  "identifier",
			Usage: "identifier for the new comparison (default: generated)",
		},
		cli.BoolFlag{
			Name:  "public",
			Usage: "make the comparison viewable without authentication",
		},
		cli.DurationFlag{
			Name:  "expires",
			Usage: "delete the comparison automatically after this long",
		},
		cli.BoolFlag{
			Name:  "wait",
			Usage: "wait for the comparison to finish processing",
		},
		cli.DurationFlag{
			Name:  "timeout",
			Value: 5 * time.Minute,
			Usage: "give up waiting after this long",
		},
	),
	Action: func(c *cli.Context) error {
		req := draftable.ComparisonRequest{
			Identifier: c.String("identifier"),
			Public:     c.Bool("public"),
		}
		var err error
		req.Left, err = sideSpec(c, "left")
		if err != nil {
			return err
		}
		req.Right, err = sideSpec(c, "right")
		if err != nil {
			return err
		}
		if d := c.Duration("expires"); d > 0 {
			expires := time.Now().Add(d)
			req.Expires = &expires
		}

		comparison, err := client.CreateComparison(req)
		if err != nil {
			return err
		}
		if c.Bool("wait") {
			comparison, err = client.WaitForComparison(comparison.Identifier, c.Duration("timeout"))
			if err != nil {
				return err
			}
		}
		printComparison(comparison)
		return nil
	},
}

var deleteComparison = cli.Command{
	Name:      "delete",
	Usage:     "delete a comparison",
	ArgsUsage: "identifier",
	Action: func(c *cli.Context) error {
		identifier, err := identifierArg(c)
		if err != nil {
			return err
		}
		return client.DeleteComparison(identifier)
	},
}

// sideFlags builds the document flags for one side of a comparison.
func sideFlags(side string) []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  side + "-url",
			Usage: "URL the service fetches the " + side + " document from",
		},
		cli.StringFlag{
			Name:  side + "-file",
			Usage: "local " + side + " document to upload",
		},
		cli.StringFlag{
			Name:  side + "-type",
			Usage: "file type of the " + side + " document (default: from the file extension)",
		},
		cli.StringFlag{
			Name:  side + "-name",
			Usage: "display name for the " + side + " document",
		},
	}
}

// sideSpec builds one side of a comparison request from the command
// line.
func sideSpec(c *cli.Context, side string) (draftable.SideSpec, error) {
	sourceURL := c.String(side + "-url")
	file := c.String(side + "-file")
	fileType := c.String(side + "-type")

	var spec draftable.SideSpec
	var err error
	switch {
	case sourceURL != "" && file != "":
		return spec, fmt.Errorf("cannot give both --%s-url and --%s-file", side, side)
	case sourceURL != "":
		spec, err = draftable.SideFromURL(sourceURL, fileType)
	case file != "" && fileType != "":
		spec, err = draftable.SideFromFileType(file, fileType)
	case file != "":
		spec, err = draftable.SideFromFile(file)
	default:
		return spec, fmt.Errorf("needs either --%s-url or --%s-file", side, side)
	}
	if err != nil {
		return spec, err
	}
	if name := c.String(side + "-name"); name != "" {
		spec = spec.WithDisplayName(name)
	}
	return spec, nil
}

func comparisonState(c draftable.Comparison) string {
	switch {
	case !c.Ready:
		return "pending"
	case c.HasFailed():
		return "failed"
	default:
		return "ready"
	}
}

func printComparison(c draftable.Comparison) {
	fmt.Printf("Identifier: %s\n", c.Identifier)
	fmt.Printf("State:      %s\n", comparisonState(c))
	fmt.Printf("Public:     %v\n", c.Public)
	fmt.Printf("Created:    %s\n", c.CreationTime.Format(time.RFC3339))
	if c.ExpiryTime != nil {
		fmt.Printf("Expires:    %s\n", c.ExpiryTime.Format(time.RFC3339))
	}
	if c.ReadyTime != nil {
		fmt.Printf("Ready at:   %s\n", c.ReadyTime.Format(time.RFC3339))
	}
	if c.HasFailed() {
		fmt.Printf("Error:      %s\n", c.ErrorMessage)
	}
	fmt.Printf("Left:       %s\n", describeSide(c.Left))
	fmt.Printf("Right:      %s\n", describeSide(c.Right))
}

func describeSide(s draftable.Side) string {
	desc := s.FileType
	if s.SourceURL != "" {
		desc += " from " + s.SourceURL
	} else {
		desc += " (uploaded)"
	}
	if s.DisplayName != "" {
		desc += " shown as " + strconv.Quote(s.DisplayName)
	}
	return desc
}
