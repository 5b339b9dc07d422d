// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/urfave/negroni"

	"github.com/diffeo/go-draftable/memory"
	"github.com/diffeo/go-draftable/restserver"
)

// ServeHTTP runs an HTTP server on the specified local address.  The
// comparison API lives under /v1, matching the hosted service's URL
// layout, and Prometheus metrics are at /metrics.  This serves
// connections forever.
func ServeHTTP(store *memory.Store, laddr string, logRequests bool) {
	r := mux.NewRouter()
	restserver.PopulateRouter(r.PathPrefix("/v1").Subrouter(), store)
	r.Handle("/metrics", promhttp.Handler())

	n := negroni.New(negroni.NewRecovery())
	if logRequests {
		n.Use(negroni.NewLogger())
	}
	n.UseHandler(r)

	logrus.WithFields(logrus.Fields{
		"err": http.ListenAndServe(laddr, n),
	}).Fatal("HTTP server stopped")
}
