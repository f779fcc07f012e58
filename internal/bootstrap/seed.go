package bootstrap

import (
	"catalog/internal/handlers/products"
	"catalog/internal/search"
)

// ProductsSchema is the fixed schema of the demo collection. Category,
// price, rating and tags are faceted; rating is the default sort key.
func ProductsSchema() search.CollectionSchema {
	return search.CollectionSchema{
		Name: search.ProductsCollection,
		Fields: []search.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string"},
			{Name: "description", Type: "string"},
			{Name: "category", Type: "string", Facet: true},
			{Name: "price", Type: "float", Facet: true},
			{Name: "rating", Type: "float", Facet: true},
			{Name: "tags", Type: "string[]", Facet: true},
		},
		DefaultSortingField: "rating",
	}
}

// SampleProducts is the fixed demo dataset loaded at startup.
func SampleProducts() []products.Product {
	return []products.Product{
		{
			ID:          "1",
			Name:        "iPhone 15 Pro",
			Description: "Latest Apple smartphone with advanced camera system",
			Category:    "Electronics",
			Price:       999.99,
			Rating:      4.7,
			Tags:        []string{"smartphone", "apple", "premium", "camera"},
		},
		{
			ID:          "2",
			Name:        "Samsung Galaxy S24",
			Description: "Flagship Android phone with AI features",
			Category:    "Electronics",
			Price:       899.99,
			Rating:      4.5,
			Tags:        []string{"smartphone", "samsung", "android", "AI"},
		},
		{
			ID:          "3",
			Name:        "MacBook Pro M3",
			Description: "Professional laptop with M3 chip",
			Category:    "Computers",
			Price:       1999.99,
			Rating:      4.8,
			Tags:        []string{"laptop", "apple", "professional", "M3"},
		},
		{
			ID:          "4",
			Name:        "Dell XPS 13",
			Description: "Ultrabook with premium design",
			Category:    "Computers",
			Price:       1299.99,
			Rating:      4.4,
			Tags:        []string{"laptop", "dell", "ultrabook", "portable"},
		},
		{
			ID:          "5",
			Name:        "Sony WH-1000XM5",
			Description: "Noise-canceling wireless headphones",
			Category:    "Audio",
			Price:       399.99,
			Rating:      4.6,
			Tags:        []string{"headphones", "sony", "wireless", "noise-canceling"},
		},
	}
}
