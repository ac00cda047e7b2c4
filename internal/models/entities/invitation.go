package entities

import "time"

type Invitation struct {
	ID            string    `db:"id" json:"id"`
	Code          string    `db:"code" json:"code"`
	RemainingUses int       `db:"remaining_uses" json:"remainingUses"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}
