package persistence

import (
	"strings"

	"github.com/stockroom/backend/internal/domain/shared"
)

// balanceViolationText is the message raised by the items_balance trigger.
// Both the postgres RAISE EXCEPTION and the sqlite RAISE(ABORT, ...) used in
// tests carry it verbatim, so a substring match covers either store.
const balanceViolationText = "assigned count larger than available count"

// translateLedgerError maps the store's balance check onto the domain error.
// Any other error passes through unchanged.
func translateLedgerError(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), balanceViolationText) {
		return shared.ErrAssignedCountExceedsAvailable
	}
	return err
}
