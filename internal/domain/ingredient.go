package domain

type Ingredient struct {
	ID              int64  `json:"id" gorm:"primaryKey"`
	Name            string `json:"name" gorm:"size:100;not null;index;uniqueIndex:idx_ingredient_name_unit"`
	MeasurementUnit string `json:"measurement_unit" gorm:"size:30;not null;uniqueIndex:idx_ingredient_name_unit"`
}

func (Ingredient) TableName() string { return "ingredients" }
