// Package ledgergrp maintains the group of handlers for ledger access.
package ledgergrp

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/opmana/powledger/business/sys/validate"
	v1 "github.com/opmana/powledger/business/web/v1"
	"github.com/opmana/powledger/foundation/events"
	"github.com/opmana/powledger/foundation/ledger"
	"github.com/opmana/powledger/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log       *zap.SugaredLogger
	Ledger    *ledger.Ledger
	MinerName string
	WS        websocket.Upgrader
	Evts      *events.Events
}

// SubmitTransaction adds a new transaction to the pending pool.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var tx submitTx
	if err := web.Decode(r, &tx); err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	if err := validate.Check(tx); err != nil {
		return err
	}

	h.Log.Infow("add tran", "traceid", v.TraceID, "sender", tx.Sender, "recipient", tx.Recipient, "amount", tx.Amount)
	forecast := h.Ledger.AddTransaction(tx.Sender, tx.Recipient, tx.Amount, tx.Data)

	resp := submitResult{
		Status:        "transaction added to pending pool",
		ForecastBlock: forecast,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Mine drains the pending pool into a new block. The call blocks until the
// proof of work search completes.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.Log.Infow("mine", "traceid", v.TraceID, "miner", h.MinerName, "pending", len(h.Ledger.PendingTransactions()))
	block := h.Ledger.MinePendingTransactions(h.MinerName)

	resp := mineResult{
		Status: "block mined",
		Block:  block,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Chain returns the full chain of blocks.
func (h Handlers) Chain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.Ledger.Chain(), http.StatusOK)
}

// Validate runs the chain integrity checks and reports the result. An
// invalid chain is a report, not a request failure.
func (h Handlers) Validate(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := validateResult{Valid: true}
	if err := h.Ledger.Validate(); err != nil {
		resp.Valid = false
		resp.Detail = err.Error()
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// BlockByIndex returns the block at the specified position in the chain.
func (h Handlers) BlockByIndex(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	index, err := strconv.ParseUint(web.Param(r, "index"), 10, 64)
	if err != nil {
		return v1.NewRequestError(fmt.Errorf("invalid block index: %w", err), http.StatusBadRequest)
	}

	block, found := h.Ledger.BlockByIndex(index)
	if !found {
		return v1.NewRequestError(fmt.Errorf("block %d not found", index), http.StatusNotFound)
	}

	return web.Respond(ctx, w, block, http.StatusOK)
}

// Mempool returns the set of transactions waiting for the next mining call.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.Ledger.PendingTransactions(), http.StatusOK)
}

// Balance returns the replayed balance for the specified address.
func (h Handlers) Balance(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	address := web.Param(r, "address")

	resp := balanceResult{
		Address: address,
		Balance: h.Ledger.Balance(address),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// History returns every transaction the specified address sent or received,
// annotated with the owning block.
func (h Handlers) History(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	address := web.Param(r, "address")

	resp := historyResult{
		Address:      address,
		Transactions: h.Ledger.History(address),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Events handles a web socket to provide mining events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	h.Log.Infow("events", "traceid", v.TraceID, "status", "client connected")

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}
