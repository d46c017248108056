package domain

// Tag is a catalog label attached to recipes. Name, color and slug are each unique.
type Tag struct {
	ID    int64  `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Color string `json:"color" gorm:"size:7;not null;uniqueIndex"`
	Slug  string `json:"slug" gorm:"size:100;not null;uniqueIndex"`
}

func (Tag) TableName() string { return "tags" }
