// ABOUTME: Credit accounting for live advisor sessions
// ABOUTME: Reservations are refunded when a session fails to open
package advisor

import (
	"errors"
	"sync"
)

// ErrInsufficientCredits is returned when a session cannot be afforded.
var ErrInsufficientCredits = errors.New("advisor: insufficient credits")

// SessionCost is the number of credits one live session consumes.
const SessionCost = 1

// CreditLedger tracks advisor session credits. A session reserves credits
// before connecting; the reservation is committed once the session is
// confirmed open and refunded if the connection fails, so a dead dial
// never burns a credit.
type CreditLedger struct {
	mu       sync.Mutex
	balance  int
	reserved int
}

// NewCreditLedger starts a ledger with the given balance.
func NewCreditLedger(balance int) *CreditLedger {
	return &CreditLedger{balance: balance}
}

// Balance returns credits not yet reserved or spent.
func (l *CreditLedger) Balance() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance - l.reserved
}

// Reserve holds n credits for a pending session.
func (l *CreditLedger) Reserve(n int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.balance-l.reserved < n {
		return ErrInsufficientCredits
	}
	l.reserved += n
	return nil
}

// Commit spends a previous reservation.
func (l *CreditLedger) Commit(n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n > l.reserved {
		n = l.reserved
	}
	l.reserved -= n
	l.balance -= n
}

// Refund releases a reservation without spending it.
func (l *CreditLedger) Refund(n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n > l.reserved {
		n = l.reserved
	}
	l.reserved -= n
}
