package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"foodgram/internal/config"
	"foodgram/internal/database"
	"foodgram/internal/repository"
	"foodgram/internal/seed"
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load catalog fixtures into the foodgram database",
	Long: `seed fills the ingredient and tag catalogs from fixture files.
Rows that already exist are skipped, so the commands are safe to rerun.`,
	SilenceUsage: true,
}

var ingredientsCmd = &cobra.Command{
	Use:   "ingredients",
	Short: "Load ingredients from a JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		batch, _ := cmd.Flags().GetInt("batch-size")

		return withDB(cmd.Context(), func(ctx context.Context, db *gorm.DB) error {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			read, inserted, err := seed.Ingredients(ctx, repository.NewIngredientRepository(db), f, batch)
			if err != nil {
				return fmt.Errorf("load ingredients: %w", err)
			}
			log.Printf("ingredients: read=%d inserted=%d skipped=%d", read, inserted, int64(read)-inserted)
			return nil
		})
	},
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Load tags from a YAML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")

		return withDB(cmd.Context(), func(ctx context.Context, db *gorm.DB) error {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			read, inserted, err := seed.Tags(ctx, repository.NewTagRepository(db), f)
			if err != nil {
				return fmt.Errorf("load tags: %w", err)
			}
			log.Printf("tags: read=%d inserted=%d skipped=%d", read, inserted, int64(read)-inserted)
			return nil
		})
	},
}

func init() {
	ingredientsCmd.Flags().StringP("file", "f", "cmd/seed/data/ingredients.json", "path to the ingredients JSON file")
	ingredientsCmd.Flags().Int("batch-size", seed.DefaultBatchSize, "rows per INSERT statement")
	tagsCmd.Flags().StringP("file", "f", "cmd/seed/data/tags.yaml", "path to the tags YAML file")

	rootCmd.AddCommand(ingredientsCmd)
	rootCmd.AddCommand(tagsCmd)
}

// withDB connects and migrates the database, runs fn, then closes the pool.
func withDB(ctx context.Context, fn func(context.Context, *gorm.DB) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	db, err := database.Connect(cfg.DatabaseURL, database.Options{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		LogLevel:        logger.Warn,
	})
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := database.Migrate(db, cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return fn(ctx, db)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
