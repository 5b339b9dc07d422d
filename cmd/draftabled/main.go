// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package draftabled provides a development Draftable comparison
// server.  It serves the same REST API as the hosted service, by
// default at http://localhost:5980/v1, backed by the in-memory store:
// nothing is persisted and no documents are actually rendered.  It
// exists so that client code can be developed and tested without
// touching the hosted service.
//
// The served accounts come from a YAML configuration file,
//
//	ready_after: 30s
//	accounts:
//	  - account_id: account
//	    auth_token: auth-token
//
// or, with no configuration file, from the -account flag.
package main

import (
	"errors"
	"flag"
	"io/ioutil"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/diffeo/go-draftable/memory"
)

var errMissingColon = errors.New(`must have the form "accountID:authToken"`)

// config is the daemon configuration file format.
type config struct {
	// ReadyAfter is how long a created comparison stays pending, as
	// a Go duration string.  Empty means ready immediately.
	ReadyAfter string `yaml:"ready_after"`

	// Accounts lists the accounts the server recognizes.
	Accounts []accountConfig `yaml:"accounts"`
}

type accountConfig struct {
	AccountID string `yaml:"account_id"`
	AuthToken string `yaml:"auth_token"`
}

func main() {
	httpBind := flag.String("http", ":5980",
		"[ip]:port for the HTTP REST interface")
	configFile := flag.String("config", "", "server configuration YAML file")
	accountFlag := flag.String("account", "account:auth-token",
		"accountID:authToken served when there is no configuration file")
	readyAfter := flag.Duration("ready-after", 0,
		"hold created comparisons pending this long")
	logRequests := flag.Bool("log-requests", false, "log all requests")
	flag.Parse()

	var cfg config
	if *configFile != "" {
		var err error
		cfg, err = loadConfigYaml(*configFile)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"err": err,
			}).Fatal("Could not load YAML configuration")
			return
		}
	}

	store := memory.New()
	pending := *readyAfter
	if cfg.ReadyAfter != "" {
		var err error
		pending, err = time.ParseDuration(cfg.ReadyAfter)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"err": err,
			}).Fatal("Could not parse ready_after duration")
			return
		}
	}
	store.SetReadyAfter(pending)

	accounts := cfg.Accounts
	if len(accounts) == 0 {
		account, err := parseAccountFlag(*accountFlag)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"err": err,
			}).Fatal("Could not parse -account flag")
			return
		}
		accounts = []accountConfig{account}
	}
	views := make([]accountView, 0, len(accounts))
	for _, account := range accounts {
		if account.AccountID == "" || account.AuthToken == "" {
			logrus.WithFields(logrus.Fields{
				"account": account.AccountID,
			}).Fatal("Account needs both an account_id and an auth_token")
			return
		}
		view := store.Account(account.AccountID, account.AuthToken)
		views = append(views, accountView{id: account.AccountID, view: view})
		logrus.WithFields(logrus.Fields{
			"account": account.AccountID,
		}).Info("Serving account")
	}

	go observe(views)
	logrus.WithFields(logrus.Fields{
		"bind": *httpBind,
	}).Info("Serving HTTP REST interface")
	ServeHTTP(store, *httpBind, *logRequests)
}

func loadConfigYaml(filename string) (config, error) {
	var result config
	bytes, err := ioutil.ReadFile(filename)
	if err == nil {
		err = yaml.Unmarshal(bytes, &result)
	}
	return result, err
}

func parseAccountFlag(value string) (accountConfig, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return accountConfig{}, errMissingColon
	}
	return accountConfig{AccountID: parts[0], AuthToken: parts[1]}, nil
}
