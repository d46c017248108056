package domain

import (
	"time"
)

// Favorite представляет связь пользователя с избранным рецептом.
// Пара (user, recipe) уникальна.
type Favorite struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"not null;index;uniqueIndex:idx_favorite_user_recipe"`
	RecipeID  int64     `json:"recipe_id" gorm:"not null;index;uniqueIndex:idx_favorite_user_recipe"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	User   *User   `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe *Recipe `json:"recipe,omitempty" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

// TableName возвращает имя таблицы в БД
func (Favorite) TableName() string {
	return "favorites"
}

// ShoppingCartEntry — рецепт в корзине пользователя. Пара (user, recipe) уникальна.
type ShoppingCartEntry struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"not null;index;uniqueIndex:idx_cart_user_recipe"`
	RecipeID  int64     `json:"recipe_id" gorm:"not null;index;uniqueIndex:idx_cart_user_recipe"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	User   *User   `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe *Recipe `json:"recipe,omitempty" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

func (ShoppingCartEntry) TableName() string {
	return "shopping_cart"
}
