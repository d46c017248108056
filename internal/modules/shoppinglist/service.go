package shoppinglist

import (
	"context"
	"fmt"
	"strings"

	"foodgram/internal/repository"
)

// Header is the first line of every rendered list.
const Header = "Список покупок:\n"

// Item is one aggregated line: the summed amount of an ingredient over
// every recipe in the cart.
type Item struct {
	Name            string
	MeasurementUnit string
	Amount          int64
}

type Aggregator interface {
	Aggregate(ctx context.Context, userID int64) ([]repository.ShoppingListItem, error)
}

type Service struct {
	agg Aggregator
}

func NewService(agg Aggregator) *Service {
	return &Service{agg: agg}
}

// Build returns the user's list ordered by ingredient name, then unit.
// An empty cart yields an empty, non-nil list.
func (s *Service) Build(ctx context.Context, userID int64) ([]Item, error) {
	rows, err := s.agg.Aggregate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("aggregate shopping list: %w", err)
	}
	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, Item{
			Name:            row.Name,
			MeasurementUnit: row.MeasurementUnit,
			Amount:          row.TotalAmount,
		})
	}
	return items, nil
}

// Render formats items as the downloadable text document.
func Render(items []Item) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("%s - %d, %s", it.Name, it.Amount, it.MeasurementUnit))
	}
	return Header + strings.Join(lines, "\n")
}
