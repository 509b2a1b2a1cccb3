// Package handlers manages the different versions of the API.
package handlers

import (
	"net/http"
	"os"

	v1 "github.com/opmana/powledger/app/services/ledger/handlers/v1"
	"github.com/opmana/powledger/business/web/v1/mid"
	"github.com/opmana/powledger/foundation/events"
	"github.com/opmana/powledger/foundation/ledger"
	"github.com/opmana/powledger/foundation/web"
	"go.uber.org/zap"
)

// MuxConfig contains all the mandatory systems required by handlers.
type MuxConfig struct {
	Shutdown  chan os.Signal
	Log       *zap.SugaredLogger
	Ledger    *ledger.Ledger
	MinerName string
	Evts      *events.Events
}

// PublicMux constructs a http.Handler with all application routes defined.
func PublicMux(cfg MuxConfig) http.Handler {

	// Construct the web.App which holds all routes as well as common Middleware.
	app := web.NewApp(
		cfg.Shutdown,
		mid.Logger(cfg.Log),
		mid.Errors(cfg.Log),
		mid.Cors("*"),
		mid.Panics(),
	)

	// Load the v1 routes.
	v1.Routes(app, v1.Config{
		Log:       cfg.Log,
		Ledger:    cfg.Ledger,
		MinerName: cfg.MinerName,
		Evts:      cfg.Evts,
	})

	return app
}
