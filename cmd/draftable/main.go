// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package draftable provides a command-line interface to a Draftable
// document-comparison service.  It talks to the hosted service by
// default; point it at a self-hosted installation, or the development
// server in cmd/draftabled, with --base-url.
//
// Credentials come from the account console.  They can be passed as
// global flags, set in the environment, or kept in a .env file in the
// current directory:
//
//	DRAFTABLE_ACCOUNT_ID=Zge2air
//	DRAFTABLE_AUTH_TOKEN=super-secret-token
//
// Typical use:
//
//	draftable create --left-file old.pdf --right-file new.pdf --wait
//	draftable list
//	draftable viewer-url JQtaguVd --valid-for 30m
package main

import (
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli"

	"github.com/diffeo/go-draftable/restclient"
)

// client is the shared connection to the comparison service, set up in
// app.Before for every command.
var client *restclient.Client

func main() {
	app := cli.NewApp()
	app.Usage = "work with comparisons on a Draftable service"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "account-id",
			Usage:  "account to operate on",
			EnvVar: "DRAFTABLE_ACCOUNT_ID",
		},
		cli.StringFlag{
			Name:   "auth-token",
			Usage:  "authentication token for the account",
			EnvVar: "DRAFTABLE_AUTH_TOKEN",
		},
		cli.StringFlag{
			Name:   "base-url",
			Usage:  "base URL of the comparison service",
			Value:  restclient.DefaultBaseURL,
			EnvVar: "DRAFTABLE_BASE_URL",
		},
	}
	app.Commands = []cli.Command{
		listComparisons,
		showComparison,
		createComparison,
		deleteComparison,
		viewerURL,
		exportCommands,
	}
	app.Before = func(c *cli.Context) error {
		var err error
		client, err = restclient.NewWithBaseURL(
			c.GlobalString("account-id"),
			c.GlobalString("auth-token"),
			c.GlobalString("base-url"))
		return err
	}

	app.RunAndExitOnError()
}

// identifierArg returns the command's single identifier argument.
func identifierArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", cli.NewExitError("exactly one identifier argument is required", 1)
	}
	return c.Args().First(), nil
}
