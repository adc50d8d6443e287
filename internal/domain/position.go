package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Direction string

const (
	Direction_Long  Direction = "LONG"
	Direction_Short Direction = "SHORT"
)

func NewDirection(s string) (*Direction, error) {
	m := map[string]Direction{
		"LONG":  Direction_Long,
		"SHORT": Direction_Short,
	}
	for k, v := range m {
		if strings.EqualFold(k, strings.TrimSpace(s)) {
			return &v, nil
		}
	}
	return nil, NewInvalidParameterError("position.direction", "could not convert '%s' to known direction", s)
}

// PositionSpec describes the trade being sized. Build it with
// NewPositionSpec so the invariants hold; fields are not mutated after.
type PositionSpec struct {
	Symbol     string          `json:"symbol,omitempty"`
	Direction  Direction       `json:"direction"`
	Shares     int64           `json:"shares"`
	EntryPrice decimal.Decimal `json:"entryPrice"`
}

func NewPositionSpec(symbol string, direction Direction, shares int64, entryPrice decimal.Decimal) (*PositionSpec, error) {
	p := PositionSpec{
		Symbol:     strings.ToUpper(strings.TrimSpace(symbol)),
		Direction:  direction,
		Shares:     shares,
		EntryPrice: entryPrice,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p PositionSpec) Validate() error {
	if p.Direction != Direction_Long && p.Direction != Direction_Short {
		return NewInvalidParameterError("position.direction", "must be LONG or SHORT, got '%s'", p.Direction)
	}
	if p.Shares <= 0 {
		return NewInvalidParameterError("position.shares", "must be positive, got %d", p.Shares)
	}
	if !p.EntryPrice.IsPositive() {
		return NewInvalidParameterError("position.entryPrice", "must be positive, got %s", p.EntryPrice.String())
	}
	return nil
}

// PnL for exiting the whole position at exitPrice
func (p PositionSpec) PnL(entry, exitPrice float64) float64 {
	shares := float64(p.Shares)
	if p.Direction == Direction_Short {
		return shares * (entry - exitPrice)
	}
	return shares * (exitPrice - entry)
}

func (p PositionSpec) Notional() decimal.Decimal {
	return p.EntryPrice.Mul(decimal.NewFromInt(p.Shares))
}

func (p PositionSpec) String() string {
	label := p.Symbol
	if label == "" {
		label = "position"
	}
	return fmt.Sprintf("%s %s %d @ %s", p.Direction, label, p.Shares, p.EntryPrice.StringFixed(2))
}
