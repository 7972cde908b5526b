package domain

import "time"

type PaymentKind string

const (
	PaymentKindCharge PaymentKind = "CHARGE"
	PaymentKindRefund PaymentKind = "REFUND"
)

// Payment is a ledger entry recording a debit (charge) or credit (refund)
// against a card, always tied to a reservation.
type Payment struct {
	ID            int64       `json:"id"`
	ReservationID int64       `json:"reservation_id"`
	CardID        int64       `json:"card_id"`
	Kind          PaymentKind `json:"kind"`
	AmountCents   int64       `json:"amount_cents"`
	Reference     string      `json:"reference"`
	CreatedOn     time.Time   `json:"created_on"`
}
