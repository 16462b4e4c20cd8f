package wallet

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophwallet/internal/server/models"
)

// ErrConservation reports a state whose ledger does not match its custody.
var ErrConservation = errors.New("ledger does not match custody")

// CheckConservation verifies that the member balances of s add up to the
// amount held by the contract account.
func CheckConservation(s *models.Snapshot) error {
	var ledger, held uint64
	for _, m := range s.Members {
		ledger += m.Balance
	}
	for _, c := range s.Custody {
		if c.Account == s.Contract {
			held = c.Balance
		}
	}
	if ledger != held {
		return fmt.Errorf("%w: members hold %d, custody holds %d", ErrConservation, ledger, held)
	}
	return nil
}
