package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/banca_settlement/internal/core/domain"
)

// DateLayout is the calendar-day format used in paths and query strings.
const DateLayout = "2006-01-02"

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ParseDate parses a calendar day. The result is UTC midnight.
func ParseDate(raw string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return d, nil
}

// DimensionQuery selects a statement owner from query parameters.
type DimensionQuery struct {
	BancaID    string `form:"bancaId"`
	VentanaID  string `form:"ventanaId"`
	VendedorID string `form:"vendedorId"`
}

// ToDomain converts empty values to absent ids.
func (q DimensionQuery) ToDomain() domain.DimensionKey {
	return domain.DimensionKey{
		BancaID:    optional(q.BancaID),
		VentanaID:  optional(q.VentanaID),
		VendedorID: optional(q.VendedorID),
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
