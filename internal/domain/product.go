package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices are rendered as JSON numbers, matching the NUMERIC column.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is a catalog item served by products-api.
type Product struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// NewProduct carries the fields accepted by POST /products.
// Pointers let Validate tell a missing field from a zero value.
type NewProduct struct {
	Name  *string          `json:"name"`
	Price *decimal.Decimal `json:"price"`
}

// Validate checks that name is present and non-empty and price is present.
func (p NewProduct) Validate() error {
	var missing []string
	if p.Name == nil || strings.TrimSpace(*p.Name) == "" {
		missing = append(missing, "name")
	}
	if p.Price == nil {
		missing = append(missing, "price")
	}
	if len(missing) > 0 {
		return NewValidationError("required", missing...)
	}
	return nil
}

// ProductPatch carries the fields accepted by PUT /products/{id}.
// Absent and null fields leave the stored value unchanged.
type ProductPatch struct {
	Name  Optional[string]          `json:"name"`
	Price Optional[decimal.Decimal] `json:"price"`
}

// Validate rejects a patch that would change nothing.
func (pp ProductPatch) Validate() error {
	_, hasName := pp.Name.Get()
	_, hasPrice := pp.Price.Get()
	if !hasName && !hasPrice {
		return ErrEmptyPatch
	}
	if name, ok := pp.Name.Get(); ok && strings.TrimSpace(name) == "" {
		return NewValidationError("cannot be empty", "name")
	}
	return nil
}

// Apply returns a copy of p with the patch merged in.
func (pp ProductPatch) Apply(p Product) Product {
	if name, ok := pp.Name.Get(); ok {
		p.Name = name
	}
	if price, ok := pp.Price.Get(); ok {
		p.Price = price
	}
	return p
}
