// Package lifecycle holds the aircraft and contract rules: status
// derivation, contract opening, profit logging, finishing, selling, and
// the read-side sort, filter and statistics helpers. Nothing here touches
// storage; callers load a Record, apply an operation and persist it.
package lifecycle

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"woa-fleet/hangar/internal/constants"
)

// Contract is embedded in its aircraft and persisted with it.
type Contract struct {
	ID           string                 `json:"id"`
	ContractType constants.ContractType `json:"contractType"`
	Player       string                 `json:"player,omitempty"`
	Destination  string                 `json:"destination"`
	Profits      []float64              `json:"profits"`
	Progress     int                    `json:"progress"`
	Finished     bool                   `json:"finished"`
	LastHandled  *time.Time             `json:"lastHandled,omitempty"`
}

// Contracts is stored as a single JSON document column, most recent first.
type Contracts []Contract

// Scan implements the sql.Scanner interface
func (c *Contracts) Scan(value interface{}) error {
	if value == nil {
		*c = Contracts{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("Contracts: cannot scan type %T", value)
	}

	result := Contracts{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &result); err != nil {
			return fmt.Errorf("Contracts: %w", err)
		}
	}
	*c = result
	return nil
}

// Value implements the driver.Valuer interface
func (c Contracts) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Record is the lifecycle-relevant part of an aircraft.
type Record struct {
	Model        string                   `gorm:"column:model;not null"`
	Size         constants.AircraftSize   `gorm:"column:size;type:varchar(1);not null"`
	Type         constants.AircraftType   `gorm:"column:type;type:varchar(8);not null"`
	Registration string                   `gorm:"column:registration;uniqueIndex;not null"`
	Airport      string                   `gorm:"column:airport;type:varchar(3);not null"`
	Status       constants.AircraftStatus `gorm:"column:status;type:varchar(16);not null"`
	TotalProfits float64                  `gorm:"column:total_profits;not null;default:0"`
	Contracts    Contracts                `gorm:"column:contracts;type:jsonb"`
}

// Tracked is anything that exposes a Record, so the read-side helpers can
// sort and filter persistence models without converting them.
type Tracked interface {
	LifecycleRecord() Record
}

// CurrentContract is the most recently opened contract, or nil.
func (r *Record) CurrentContract() *Contract {
	if len(r.Contracts) == 0 {
		return nil
	}
	return &r.Contracts[0]
}

// ActiveContract returns the first unfinished contract, or nil.
func (r *Record) ActiveContract() *Contract {
	for i := range r.Contracts {
		if !r.Contracts[i].Finished {
			return &r.Contracts[i]
		}
	}
	return nil
}

func (r *Record) indexOf(contractID string) int {
	for i := range r.Contracts {
		if r.Contracts[i].ID == contractID {
			return i
		}
	}
	return -1
}

// Contract looks up a contract by id.
func (r *Record) Contract(contractID string) (*Contract, error) {
	i := r.indexOf(contractID)
	if i < 0 {
		return nil, constants.ErrContractNotFound
	}
	return &r.Contracts[i], nil
}

// MeanProfit is the average of the logged profits, false when none exist.
func (c *Contract) MeanProfit() (float64, bool) {
	if len(c.Profits) == 0 {
		return 0, false
	}
	var sum float64
	for _, p := range c.Profits {
		sum += p
	}
	return sum / float64(len(c.Profits)), true
}

// BackfillLastHandled stamps contracts that predate the lastHandled field.
// Reports whether anything changed.
func (r *Record) BackfillLastHandled(now time.Time) bool {
	changed := false
	for i := range r.Contracts {
		if r.Contracts[i].LastHandled == nil {
			t := now
			r.Contracts[i].LastHandled = &t
			changed = true
		}
	}
	return changed
}
