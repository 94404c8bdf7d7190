// Package catalog supplies the product reference data consumed by the
// storefront. The core does not fetch, cache or validate products; any
// Provider hands over an already validated sequence.
package catalog

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Ithalolp/JW-STORE/pkg/domain/model"
)

type Provider interface {
	Products(ctx context.Context) ([]model.Product, error)
}

// NewStaticProvider returns the built-in JW Store catalog.
func NewStaticProvider() Provider {
	return &staticProvider{products: []model.Product{
		{ID: 1, Name: "Imagem Camiseta", Price: decimal.RequireFromString("129.90"), Category: "tshirts", Image: "src/imagem-insta.png"},
		{ID: 2, Name: "Imagem Camiseta 2", Price: decimal.RequireFromString("289.90"), Category: "hoodies"},
		{ID: 3, Name: "Imagem shorts", Price: decimal.RequireFromString("199.90"), Category: "bottoms"},
		{ID: 4, Name: "Imagem Acessório", Price: decimal.RequireFromString("89.90"), Category: "accessories"},
		{ID: 5, Name: "Imagem Camiseta 3", Price: decimal.RequireFromString("119.90"), Category: "tshirts"},
		{ID: 6, Name: "Imagem Acessório 2", Price: decimal.RequireFromString("159.90"), Category: "accessories"},
	}}
}

type staticProvider struct {
	products []model.Product
}

func (p *staticProvider) Products(_ context.Context) ([]model.Product, error) {
	products := make([]model.Product, len(p.products))
	copy(products, p.products)
	return products, nil
}

// Categories lists distinct categories in first-seen order.
func Categories(products []model.Product) []string {
	seen := make(map[string]bool, len(products))
	var categories []string
	for _, product := range products {
		if !seen[product.Category] {
			seen[product.Category] = true
			categories = append(categories, product.Category)
		}
	}
	return categories
}

// FilterByCategory keeps products of one category. "all" and the empty
// string keep everything.
func FilterByCategory(products []model.Product, category string) []model.Product {
	if category == "" || category == "all" {
		return products
	}
	var filtered []model.Product
	for _, product := range products {
		if product.Category == category {
			filtered = append(filtered, product)
		}
	}
	return filtered
}
