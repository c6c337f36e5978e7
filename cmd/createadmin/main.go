package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// Credentials come from flags or the environment, never from defaults.
// The password is only read from CRM_ADMIN_PASSWORD to keep it out of
// shell history and process listings.
func main() {
	var (
		username string
		email    string
	)

	flag.StringVar(&username, "username", os.Getenv("CRM_ADMIN_USERNAME"), "Admin username (or CRM_ADMIN_USERNAME)")
	flag.StringVar(&email, "email", os.Getenv("CRM_ADMIN_EMAIL"), "Admin email, optional (or CRM_ADMIN_EMAIL)")
	flag.Parse()

	password := os.Getenv("CRM_ADMIN_PASSWORD")

	if username == "" || password == "" {
		fmt.Fprintln(os.Stderr, "Usage: createadmin -username <name> [-email <email>]")
		fmt.Fprintln(os.Stderr, "The password must be provided via the CRM_ADMIN_PASSWORD environment variable.")
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      "info",
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	userRepo := persistence.NewGormUserRepository(db.DB)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		log.Fatal("Failed to check for existing user", zap.Error(err))
	}
	if exists {
		log.Fatal("User already exists", zap.String("username", username))
	}

	user, err := identity.NewAdminUser(username, email, password)
	if err != nil {
		log.Fatal("Invalid admin credentials", zap.Error(err))
	}

	if err := userRepo.Save(ctx, user); err != nil {
		log.Fatal("Failed to save admin user", zap.Error(err))
	}

	log.Info("Admin user created",
		zap.String("username", user.Username),
		zap.String("id", user.ID.String()),
	)
}
