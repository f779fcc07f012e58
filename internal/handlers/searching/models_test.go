package searching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func TestFilterExpression(t *testing.T) {
	tests := []struct {
		name  string
		query SearchQuery
		want  string
	}{
		{
			name:  "no filters",
			query: SearchQuery{Query: "phone"},
			want:  "",
		},
		{
			name:  "category only",
			query: SearchQuery{Query: "phone", Category: strPtr("Electronics")},
			want:  "category:=Electronics",
		},
		{
			name:  "min price only",
			query: SearchQuery{Query: "phone", MinPrice: f64Ptr(100)},
			want:  "price:>=100",
		},
		{
			name:  "max price only",
			query: SearchQuery{Query: "phone", MaxPrice: f64Ptr(499.99)},
			want:  "price:<=499.99",
		},
		{
			name:  "category and max price",
			query: SearchQuery{Query: "phone", Category: strPtr("Audio"), MaxPrice: f64Ptr(500)},
			want:  "category:=Audio && price:<=500",
		},
		{
			name: "all filters keep category, min, max order",
			query: SearchQuery{
				Query:    "phone",
				Category: strPtr("Electronics"),
				MinPrice: f64Ptr(100),
				MaxPrice: f64Ptr(999.99),
			},
			want: "category:=Electronics && price:>=100 && price:<=999.99",
		},
		{
			name:  "empty category counts as absent",
			query: SearchQuery{Query: "phone", Category: strPtr(""), MinPrice: f64Ptr(10)},
			want:  "price:>=10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.query.FilterExpression())
		})
	}
}
