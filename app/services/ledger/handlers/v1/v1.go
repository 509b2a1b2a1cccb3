// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/opmana/powledger/app/services/ledger/handlers/v1/ledgergrp"
	"github.com/opmana/powledger/foundation/events"
	"github.com/opmana/powledger/foundation/ledger"
	"github.com/opmana/powledger/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log       *zap.SugaredLogger
	Ledger    *ledger.Ledger
	MinerName string
	Evts      *events.Events
}

// Routes binds all the version 1 routes.
func Routes(app *web.App, cfg Config) {
	lgh := ledgergrp.Handlers{
		Log:       cfg.Log,
		Ledger:    cfg.Ledger,
		MinerName: cfg.MinerName,
		Evts:      cfg.Evts,
	}

	app.Handle(http.MethodPost, version, "/tx/submit", lgh.SubmitTransaction)
	app.Handle(http.MethodPost, version, "/mine", lgh.Mine)
	app.Handle(http.MethodGet, version, "/chain", lgh.Chain)
	app.Handle(http.MethodGet, version, "/chain/validate", lgh.Validate)
	app.Handle(http.MethodGet, version, "/blocks/:index", lgh.BlockByIndex)
	app.Handle(http.MethodGet, version, "/mempool", lgh.Mempool)
	app.Handle(http.MethodGet, version, "/balances/:address", lgh.Balance)
	app.Handle(http.MethodGet, version, "/history/:address", lgh.History)
	app.Handle(http.MethodGet, version, "/events", lgh.Events)
}
