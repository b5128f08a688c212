package supply

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Supply struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Quantity    decimal.Decimal  `json:"quantity"`
	Unit        string           `json:"unit"`
	MinQuantity *decimal.Decimal `json:"minQuantity,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// LowStock reports whether quantity has dropped below the configured minimum.
// Supplies without a minimum are never low.
func (s Supply) LowStock() bool {
	return s.MinQuantity != nil && s.Quantity.LessThan(*s.MinQuantity)
}

// WithStock is a supply row as reported, with its low-stock flag.
type WithStock struct {
	Supply
	LowStock bool `json:"lowStock"`
}

func Annotate(in []Supply) []WithStock {
	out := make([]WithStock, len(in))
	for i, s := range in {
		out[i] = WithStock{Supply: s, LowStock: s.LowStock()}
	}
	return out
}

func parseQuantities(s *Supply, qty string, minQty *string) error {
	q, err := decimal.NewFromString(qty)
	if err != nil {
		return fmt.Errorf("supply %s quantity: %w", s.ID, err)
	}
	s.Quantity = q
	if minQty != nil {
		m, err := decimal.NewFromString(*minQty)
		if err != nil {
			return fmt.Errorf("supply %s min quantity: %w", s.ID, err)
		}
		s.MinQuantity = &m
	}
	return nil
}
