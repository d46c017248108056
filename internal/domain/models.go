package domain

// Models lists every persisted entity in dependency order, for AutoMigrate.
func Models() []any {
	return []any{
		&User{},
		&Tag{},
		&Ingredient{},
		&Recipe{},
		&RecipeTag{},
		&RecipeIngredient{},
		&Favorite{},
		&ShoppingCartEntry{},
		&Follow{},
	}
}
