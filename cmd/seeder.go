package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/finito-app/expense-tracker/internal/expense"
	"github.com/finito-app/expense-tracker/pkg/logger"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	seedGroupID string
	seedCount   int
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the store with sample expenses",
	Long:  `Seed the active storage backend with sample expenses for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		logger.Init(cfg.App.Env, cfg.Logging.Level)
		lg := logger.L()

		deps := &Dependencies{Config: cfg, Logger: lg}
		if err := initStorage(cfg, lg, deps); err != nil {
			log.Fatalf("failed to init storage: %v", err)
		}
		ctx := context.Background()
		defer closeStorage(ctx, deps)

		groupID := seedGroupID
		if groupID == "" {
			groupID = uuid.NewString()
		}

		categories := []expense.Category{
			expense.CategoryGroceries,
			expense.CategoryRestaurants,
			expense.CategoryTransportation,
			expense.CategoryEntertainment,
			expense.CategoryUtilities,
			expense.CategoryHome,
		}
		types := []expense.ExpenseType{
			expense.TypeCreditCard,
			expense.TypeDebitCard,
			expense.TypePixTransfer,
			expense.TypeCash,
		}
		spenders := []string{"Ann", "Bruno", "Carla"}

		for i := 0; i < seedCount; i++ {
			date := time.Now().UTC().AddDate(0, 0, -i)
			dto := expense.CreateExpenseDTO{
				GroupID:     groupID,
				AmountCents: int64(750 + i*325),
				Category:    categories[i%len(categories)],
				TypeExpense: types[i%len(types)],
				SpentBy:     spenders[i%len(spenders)],
				Date:        &date,
			}
			if i%3 == 0 {
				note := fmt.Sprintf("sample expense %d", i+1)
				dto.Note = &note
			}

			entity, err := expense.New(dto)
			if err != nil {
				log.Fatalf("failed to build sample expense: %v", err)
			}
			if _, err := deps.Repository.Create(ctx, entity); err != nil {
				log.Fatalf("failed to seed expense: %v", err)
			}
		}

		fmt.Printf("Seeded %d expenses into group %s\n", seedCount, groupID)
	},
}
