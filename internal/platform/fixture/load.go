package fixture

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/phrazzld/clinic-api/internal/domain"
)

//go:embed data/*.json
var dataFS embed.FS

const (
	embeddedUsers    = "data/users.json"
	embeddedProducts = "data/products.json"
)

// read returns the file at path, or the embedded fallback when path is empty.
func read(path, fallback string) ([]byte, error) {
	if path == "" {
		return dataFS.ReadFile(fallback)
	}
	return os.ReadFile(path)
}

// LoadUsers decodes the users fixture at path, or the embedded one when path is
// empty. Records are returned in ascending id order; duplicate ids are rejected.
func LoadUsers(path string) ([]domain.User, error) {
	data, err := read(path, embeddedUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to read users fixture: %w", err)
	}

	var users []domain.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users fixture: %w", err)
	}

	sort.SliceStable(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	if err := checkUnique(len(users), func(i int) int64 { return users[i].ID }); err != nil {
		return nil, fmt.Errorf("invalid users fixture: %w", err)
	}
	return users, nil
}

// LoadProducts decodes the products fixture at path, or the embedded one when
// path is empty.
func LoadProducts(path string) ([]domain.Product, error) {
	data, err := read(path, embeddedProducts)
	if err != nil {
		return nil, fmt.Errorf("failed to read products fixture: %w", err)
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products fixture: %w", err)
	}

	for _, p := range products {
		if p.ID <= 0 {
			return nil, fmt.Errorf("invalid products fixture: %w", domain.ErrInvalidID)
		}
	}
	sort.SliceStable(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	if err := checkUnique(len(products), func(i int) int64 { return products[i].ID }); err != nil {
		return nil, fmt.Errorf("invalid products fixture: %w", err)
	}
	return products, nil
}

// checkUnique expects ids sorted ascending.
func checkUnique(n int, id func(int) int64) error {
	for i := 1; i < n; i++ {
		if id(i) == id(i-1) {
			return fmt.Errorf("duplicate id %d", id(i))
		}
	}
	return nil
}
