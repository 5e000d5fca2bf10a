// Command seed creates a demo user with a handful of expenses so the
// dashboard has something to show on a fresh database.
package main

import (
	"context"
	"flag"

	"github.com/sirupsen/logrus"

	"spendlog/internal/config"
	"spendlog/internal/db"
	"spendlog/internal/model"
	"spendlog/internal/repository"
	"spendlog/internal/service"
	"spendlog/internal/session"
)

func main() {
	username := flag.String("username", "demo", "demo account username")
	password := flag.String("password", "demo1234", "demo account password")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logrus.Fatalf("database init: %v", err)
	}
	if err := gormDB.AutoMigrate(&model.User{}, &model.Expense{}); err != nil {
		logrus.Fatalf("auto-migrate: %v", err)
	}

	userRepo := repository.NewUserRepository(gormDB)
	expenseRepo := repository.NewExpenseRepository(gormDB)

	// No Redis here: the nil-safe cache client makes caching a no-op.
	authService := service.NewAuthService(userRepo, session.NewManager(cfg.SessionSecret), session.NewStore(nil))
	expenseService := service.NewExpenseService(expenseRepo, nil)

	ctx := context.Background()

	user, err := authService.Register(ctx, *username, *password)
	if err != nil {
		logrus.Fatalf("create demo user: %v", err)
	}
	logrus.WithField("username", user.Username).Info("demo user created")

	samples := []service.AddExpenseInput{
		{Title: "Groceries", Amount: "54.20", Category: "Food", Date: "2024-01-03"},
		{Title: "Coffee", Amount: "4.50", Category: "Food", Date: "2024-01-05"},
		{Title: "Bus ticket", Amount: "2.00", Category: "Transport", Date: "2024-01-10"},
		{Title: "Electricity", Amount: "61.75", Category: "Utilities", Date: "2024-02-01", Note: "January bill"},
		{Title: "Cinema", Amount: "12.00", Category: "Entertainment", Date: "2024-02-14"},
	}
	for _, input := range samples {
		if _, err := expenseService.Add(ctx, user, input); err != nil {
			logrus.Fatalf("seed expense %q: %v", input.Title, err)
		}
	}
	logrus.WithField("count", len(samples)).Info("demo expenses created")
}
