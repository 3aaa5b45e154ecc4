package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The backend speaks plain JSON numbers for price/pnl fields.
	decimal.MarshalJSONWithoutQuotes = true
}

// Side is the direction of a trade.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// ParseSide normalizes and validates a raw side string.
func ParseSide(raw string) (Side, error) {
	switch Side(strings.ToUpper(strings.TrimSpace(raw))) {
	case SideBuy:
		return SideBuy, nil
	case SideSell:
		return SideSell, nil
	}
	return "", fmt.Errorf("unknown side %q", raw)
}

// Symbol identifies a tradable instrument.
type Symbol string

const (
	SymbolNifty     Symbol = "NIFTY"
	SymbolBankNifty Symbol = "BANKNIFTY"
	SymbolSBIN      Symbol = "SBIN"
	SymbolReliance  Symbol = "RELIANCE"
)

// Symbols returns the tradable universe in display order.
func Symbols() []Symbol {
	return []Symbol{SymbolNifty, SymbolBankNifty, SymbolSBIN, SymbolReliance}
}

// ParseSymbol normalizes and validates a raw symbol string.
func ParseSymbol(raw string) (Symbol, error) {
	s := Symbol(strings.ToUpper(strings.TrimSpace(raw)))
	for _, known := range Symbols() {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown symbol %q", raw)
}

// TradeRequest is a validated order ready for submission.
type TradeRequest struct {
	Symbol   Symbol          `json:"symbol"`
	Side     Side            `json:"side"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Validate checks the request invariants: known symbol and side,
// positive quantity, non-negative price.
func (r TradeRequest) Validate() error {
	if _, err := ParseSymbol(string(r.Symbol)); err != nil {
		return err
	}
	if _, err := ParseSide(string(r.Side)); err != nil {
		return err
	}
	if r.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", r.Quantity)
	}
	if r.Price.IsNegative() {
		return fmt.Errorf("price must be non-negative, got %s", r.Price)
	}
	return nil
}

// wireTimeLayout is the backend's zone-less ISO8601 timestamp form.
const wireTimeLayout = "2006-01-02T15:04:05.999999999"

// Timestamp is a time.Time whose JSON decoding accepts both
// offset-bearing RFC3339 and the backend's zone-less ISO8601
// timestamps. Zone-less values carry the backend's local wall clock.
// Marshalling uses the embedded time.Time's RFC3339 form.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.ParseInLocation(wireTimeLayout, raw, time.Local)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q", raw)
	}
	t.Time = parsed
	return nil
}

// Trade is an executed trade as reported by the backend.
// Immutable once returned; ordering is whatever the backend sent.
type Trade struct {
	TradeID   string          `json:"tradeId"`
	TradeTime Timestamp       `json:"tradeTime"`
	Symbol    Symbol          `json:"symbol"`
	Side      Side            `json:"side"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// Key returns the trade's unique key (used for list identity).
func (t Trade) Key() string {
	return t.TradeID
}
