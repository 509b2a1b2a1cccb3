package ledgergrp

import "github.com/opmana/powledger/foundation/ledger"

// submitTx is what a client submits to place a transaction in the
// pending pool. Amounts are not checked for sufficiency anywhere,
// only for structural validity at this boundary.
type submitTx struct {
	Sender    string  `json:"sender" validate:"required"`
	Recipient string  `json:"recipient" validate:"required"`
	Amount    float64 `json:"amount" validate:"required"`
	Data      string  `json:"data"`
}

// submitResult reports the forecast index for a submitted transaction. The
// forecast is not a guarantee: more transactions can arrive before the
// next mining call.
type submitResult struct {
	Status        string `json:"status"`
	ForecastBlock int    `json:"forecast_block"`
}

// mineResult reports the outcome of a mining call.
type mineResult struct {
	Status string       `json:"status"`
	Block  ledger.Block `json:"block"`
}

// validateResult reports chain integrity. Detail carries the first
// offending block when the chain is invalid.
type validateResult struct {
	Valid  bool   `json:"valid"`
	Detail string `json:"detail,omitempty"`
}

// balanceResult reports the replayed balance for one address.
type balanceResult struct {
	Address string  `json:"address"`
	Balance float64 `json:"balance"`
}

// historyResult reports every transaction an address took part in.
type historyResult struct {
	Address      string             `json:"address"`
	Transactions []ledger.HistoryTx `json:"transactions"`
}
