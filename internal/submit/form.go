package submit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/papertrade/tradedash/internal/domain"
)

// FormInput is the raw order-entry form as the user typed it.
type FormInput struct {
	Symbol   string
	Side     string
	Quantity string
	Price    string
}

// ValidationError means the form could not be turned into a valid
// TradeRequest. It is raised before any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ParseForm converts raw form strings into a validated TradeRequest.
// Every numeric field must parse cleanly: quantity as a positive
// integer, price as a non-negative decimal. Nothing resembling the
// raw input ever reaches the wire on a parse failure.
func ParseForm(in FormInput) (domain.TradeRequest, error) {
	var req domain.TradeRequest

	symbol, err := domain.ParseSymbol(in.Symbol)
	if err != nil {
		return req, &ValidationError{Field: "symbol", Reason: err.Error()}
	}

	side, err := domain.ParseSide(in.Side)
	if err != nil {
		return req, &ValidationError{Field: "side", Reason: err.Error()}
	}

	rawQty := strings.TrimSpace(in.Quantity)
	if rawQty == "" {
		return req, &ValidationError{Field: "quantity", Reason: "required"}
	}
	quantity, err := strconv.Atoi(rawQty)
	if err != nil {
		return req, &ValidationError{Field: "quantity", Reason: "not a whole number"}
	}
	if quantity <= 0 {
		return req, &ValidationError{Field: "quantity", Reason: "must be positive"}
	}

	rawPrice := strings.TrimSpace(in.Price)
	if rawPrice == "" {
		return req, &ValidationError{Field: "price", Reason: "required"}
	}
	price, err := decimal.NewFromString(rawPrice)
	if err != nil {
		return req, &ValidationError{Field: "price", Reason: "not a number"}
	}
	if price.IsNegative() {
		return req, &ValidationError{Field: "price", Reason: "must be non-negative"}
	}

	req = domain.TradeRequest{
		Symbol:   symbol,
		Side:     side,
		Quantity: quantity,
		Price:    price,
	}
	return req, nil
}
