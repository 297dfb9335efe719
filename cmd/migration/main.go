package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/drivers/database"
	"telehealth-service/internal/app/drivers/logger"
	"telehealth-service/internal/app/services/core/auth"
	"telehealth-service/internal/app/services/core/users"
	"telehealth-service/internal/migration"
	"time"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "migration",
		Short: "Database schema management for the telehealth service",
	}

	rootCmd.AddCommand(upCmd())
	rootCmd.AddCommand(downCmd())
	rootCmd.AddCommand(seedAdminCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func upCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db := database.NewPostgresDB(config.NewDriverConfig())
			defer db.Close()

			n, err := migration.Up(db)
			if err != nil {
				return fmt.Errorf("executing migration: %w", err)
			}
			log.Printf("Applied %d migrations!\n", n)
			return nil
		},
	}
}

func downCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back applied migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			max, _ := cmd.Flags().GetInt("max")

			db := database.NewPostgresDB(config.NewDriverConfig())
			defer db.Close()

			n, err := migration.Down(db, max)
			if err != nil {
				return fmt.Errorf("rolling back migration: %w", err)
			}
			log.Printf("Rolled back %d migrations!\n", n)
			return nil
		},
	}
	cmd.Flags().Int("max", 1, "Number of migrations to roll back (0 rolls back everything)")
	return cmd
}

func seedAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			name, _ := cmd.Flags().GetString("name")
			if email == "" || password == "" {
				return fmt.Errorf("--email and --password are required")
			}

			driverConfig := config.NewDriverConfig()
			internalConfig := config.NewInternalConfig()
			log := logger.NewZapLogger(driverConfig, internalConfig)
			defer func() { _ = log.Sync() }()

			db := database.NewPostgresDB(driverConfig)
			defer db.Close()

			authUsecase := auth.NewAuthUsecase(
				users.NewUserPostgresRepository(db, log),
				users.NewPatientPostgresRepository(db, log),
				users.NewDoctorPostgresRepository(db, log),
				users.NewAdminPostgresRepository(db, log),
				nil,
				nil,
				internalConfig,
				log,
			)

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			user, err := authUsecase.CreateAdmin(ctx, email, password, name)
			if err != nil {
				return fmt.Errorf("creating admin: %w", err)
			}
			fmt.Printf("Admin %s created with id %s\n", user.Email, user.ID)
			return nil
		},
	}
	cmd.Flags().String("email", "", "Administrator email")
	cmd.Flags().String("password", "", "Administrator password")
	cmd.Flags().String("name", "Administrator", "Administrator full name")
	return cmd
}
