// Package seed loads catalog fixtures (ingredients, tags) into the database.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"foodgram/internal/domain"
	"foodgram/internal/modules/catalog"
	"foodgram/internal/pkg/validator"

	"gopkg.in/yaml.v3"
)

const DefaultBatchSize = 500

type IngredientStore interface {
	Upsert(ctx context.Context, items []domain.Ingredient, batchSize int) (int64, error)
}

type TagStore interface {
	Upsert(ctx context.Context, tags []domain.Tag) (int64, error)
}

type ingredientRow struct {
	Name            string `json:"name" validate:"required,max=100"`
	MeasurementUnit string `json:"measurement_unit" validate:"required,max=30"`
}

type tagRow struct {
	Name  string `yaml:"name" json:"name" validate:"required,max=100"`
	Color string `yaml:"color" json:"color" validate:"required,hexcolor6"`
	Slug  string `yaml:"slug" json:"slug" validate:"required,max=100,slug"`
}

// ReadIngredients parses a JSON array of {"name", "measurement_unit"}.
// Repeated (name, unit) pairs are kept once.
func ReadIngredients(r io.Reader) ([]domain.Ingredient, error) {
	var rows []ingredientRow
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode ingredients: %w", err)
	}

	seen := make(map[[2]string]struct{}, len(rows))
	out := make([]domain.Ingredient, 0, len(rows))
	for i, row := range rows {
		row.Name = strings.TrimSpace(row.Name)
		row.MeasurementUnit = strings.TrimSpace(row.MeasurementUnit)
		if errs := validator.Validate(row); errs != nil {
			return nil, fmt.Errorf("ingredient #%d: %v", i, errs)
		}
		key := [2]string{row.Name, row.MeasurementUnit}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, domain.Ingredient{Name: row.Name, MeasurementUnit: row.MeasurementUnit})
	}
	return out, nil
}

// ReadTags parses a YAML list of tags. Names are normalised the same way
// as tags created through the API.
func ReadTags(r io.Reader) ([]domain.Tag, error) {
	var rows []tagRow
	if err := yaml.NewDecoder(r).Decode(&rows); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode tags: %w", err)
	}

	out := make([]domain.Tag, 0, len(rows))
	for i, row := range rows {
		if errs := validator.Validate(row); errs != nil {
			return nil, fmt.Errorf("tag #%d: %v", i, errs)
		}
		out = append(out, domain.Tag{
			Name:  catalog.NormalizeTagName(row.Name),
			Color: strings.ToUpper(row.Color),
			Slug:  row.Slug,
		})
	}
	return out, nil
}

// Ingredients reads the fixture and inserts the rows that are not there yet.
func Ingredients(ctx context.Context, store IngredientStore, r io.Reader, batchSize int) (read int, inserted int64, err error) {
	items, err := ReadIngredients(r)
	if err != nil {
		return 0, 0, err
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	inserted, err = store.Upsert(ctx, items, batchSize)
	return len(items), inserted, err
}

func Tags(ctx context.Context, store TagStore, r io.Reader) (read int, inserted int64, err error) {
	tags, err := ReadTags(r)
	if err != nil {
		return 0, 0, err
	}
	inserted, err = store.Upsert(ctx, tags)
	return len(tags), inserted, err
}
