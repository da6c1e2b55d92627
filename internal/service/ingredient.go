package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/receptorium/backend/internal/models"
)

// IngredientService serves the ingredient reference data. Rows are created by
// staff tooling and the CSV loader, never by end users.
type IngredientService struct {
	db *gorm.DB
}

func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

// Search lists ingredients whose name starts with prefix, ordered by name. An
// empty prefix lists everything; the result is not paginated.
func (s *IngredientService) Search(ctx context.Context, prefix string) ([]models.Ingredient, error) {
	q := s.db.WithContext(ctx).Order("name")
	if prefix != "" {
		q = q.Where("name LIKE ?", strings.ToLower(prefix)+"%")
	}
	var ingredients []models.Ingredient
	if err := q.Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (s *IngredientService) Get(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// Create inserts one ingredient, lowercasing both fields the way the bulk
// loader does.
func (s *IngredientService) Create(ctx context.Context, name, unit string) (*models.Ingredient, error) {
	ingredient := models.Ingredient{
		Name:            strings.ToLower(strings.TrimSpace(name)),
		MeasurementUnit: strings.ToLower(strings.TrimSpace(unit)),
	}
	if err := s.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// ImportCSV reads (name, measurement_unit) rows, lowercases both columns and
// inserts them idempotently. Returns the number of rows created.
func (s *IngredientService) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	created := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return created, fmt.Errorf("read csv: %w", err)
		}
		if len(record) < 2 {
			return created, fmt.Errorf("csv row needs name and measurement unit, got %v", record)
		}

		ingredient := models.Ingredient{
			Name:            strings.ToLower(strings.TrimSpace(record[0])),
			MeasurementUnit: strings.ToLower(strings.TrimSpace(record[1])),
		}
		res := s.db.WithContext(ctx).
			Where("name = ? AND measurement_unit = ?", ingredient.Name, ingredient.MeasurementUnit).
			FirstOrCreate(&ingredient)
		if res.Error != nil {
			return created, res.Error
		}
		if res.RowsAffected > 0 {
			created++
		}
	}
	return created, nil
}
