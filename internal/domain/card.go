package domain

import "time"

type CardType string

const (
	CardTypeDebit  CardType = "DEBIT"
	CardTypeCredit CardType = "CREDIT"
)

// Card is a stored payment instrument. Balance is mutated only by ledger
// debits and credits inside the enclosing unit of work.
type Card struct {
	ID             int64     `json:"id"`
	Number         string    `json:"number"`
	Type           CardType  `json:"type"`
	Expiry         time.Time `json:"expiry"`
	PIN            string    `json:"-"`
	BalanceCents   int64     `json:"balance_cents"`
	HolderDocument string    `json:"holder_document,omitempty"`
	CreatedOn      time.Time `json:"created_on"`
}

// Validate checks the caller-supplied card credentials. The expiry comparison
// is exact-date equality against the supplied value: the client confirms the
// card's printed expiry as a second factor, not merely that the card is
// unexpired.
func (c *Card) Validate(pin string, expiry time.Time, holderDocument string, now time.Time) error {
	if c.PIN != pin {
		return ErrWrongPIN
	}
	if !sameDate(c.Expiry, expiry) {
		return ErrExpiryMismatch
	}
	if c.Expiry.Before(truncateToDate(now)) {
		return ErrCardExpired
	}
	if c.HolderDocument != "" && c.HolderDocument != holderDocument {
		return ErrHolderMismatch
	}
	return nil
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
