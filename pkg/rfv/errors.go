package rfv

import "errors"

// Pipeline errors
var (
	ErrEmptyLedger = errors.New("ledger has no transactions")
)
