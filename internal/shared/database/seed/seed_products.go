package seed

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/database/dbgen"

	"go.uber.org/zap"
)

type seedPrice struct {
	Currency string
	Price    string
	Sale     string
}

type seedProduct struct {
	Slug        string
	Name        string
	Brand       string
	Description string
	ImageURL    string
	Specs       map[string]any
	Stock       int32
	Prices      []seedPrice
}

var products = []seedProduct{
	{
		Slug:        "volt-x",
		Name:        "Volt X",
		Brand:       "VoltRide",
		Description: "Commuter scooter with dual suspension and a swappable battery.",
		ImageURL:    "https://cdn.voltride.shop/products/volt-x.jpg",
		Specs:       map[string]any{"range_km": 45, "top_speed_kmh": 25, "weight_kg": 16.5, "motor_w": 500},
		Stock:       40,
		Prices: []seedPrice{
			{Currency: "USD", Price: "599.00", Sale: "549.00"},
			{Currency: "EUR", Price: "559.00"},
		},
	},
	{
		Slug:        "volt-city-lite",
		Name:        "Volt City Lite",
		Brand:       "VoltRide",
		Description: "Folding lightweight scooter for short urban hops.",
		ImageURL:    "https://cdn.voltride.shop/products/volt-city-lite.jpg",
		Specs:       map[string]any{"range_km": 25, "top_speed_kmh": 20, "weight_kg": 11.2, "motor_w": 300},
		Stock:       75,
		Prices: []seedPrice{
			{Currency: "USD", Price: "349.00"},
			{Currency: "EUR", Price: "329.00"},
		},
	},
	{
		Slug:        "thunder-pro",
		Name:        "Thunder Pro",
		Brand:       "Thunder",
		Description: "Off-road scooter with 10 inch pneumatic tyres and hydraulic brakes.",
		ImageURL:    "https://cdn.voltride.shop/products/thunder-pro.jpg",
		Specs:       map[string]any{"range_km": 70, "top_speed_kmh": 45, "weight_kg": 29, "motor_w": 1200},
		Stock:       12,
		Prices: []seedPrice{
			{Currency: "USD", Price: "1299.00"},
		},
	},
	{
		Slug:        "helmet-urban",
		Name:        "Urban Helmet",
		Brand:       "VoltRide",
		Description: "Certified helmet with integrated rear light.",
		ImageURL:    "https://cdn.voltride.shop/products/helmet-urban.jpg",
		Specs:       map[string]any{"sizes": []string{"S", "M", "L"}},
		Stock:       200,
		Prices: []seedPrice{
			{Currency: "USD", Price: "59.00"},
			{Currency: "EUR", Price: "55.00"},
		},
	},
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func Products(ctx context.Context, q *dbgen.Queries, log *zap.Logger) error {
	for _, p := range products {
		specs, err := json.Marshal(p.Specs)
		if err != nil {
			return fmt.Errorf("marshal specs for %s: %w", p.Slug, err)
		}

		row, err := q.UpsertProduct(ctx, dbgen.UpsertProductParams{
			Slug:        p.Slug,
			Name:        p.Name,
			Brand:       p.Brand,
			Description: p.Description,
			ImageUrl:    p.ImageURL,
			Specs:       specs,
			Stock:       p.Stock,
			IsActive:    true,
		})
		if err != nil {
			return fmt.Errorf("seed product %s: %w", p.Slug, err)
		}

		for _, pr := range p.Prices {
			err := q.UpsertProductPrice(ctx, dbgen.UpsertProductPriceParams{
				ProductID: row.ID,
				Currency:  pr.Currency,
				Price:     pr.Price,
				SalePrice: nullable(pr.Sale),
			})
			if err != nil {
				return fmt.Errorf("seed %s price for %s: %w", pr.Currency, p.Slug, err)
			}
		}
		log.Info("seeded product", zap.String("slug", p.Slug), zap.Int("prices", len(p.Prices)))
	}
	return nil
}
