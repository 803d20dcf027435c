package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/P-E-E-K-A/peeka/cmd/api/commands"
)

// @title Peeka API
// @version 1.0
// @description Personal productivity dashboard backend

// @contact.name Peeka
// @contact.url https://github.com/P-E-E-K-A/peeka

// @license.name MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	rootCmd := &cobra.Command{
		Use:   "peeka",
		Short: "Peeka API Server",
		Long:  `Peeka is a personal productivity dashboard backend with synced lists, notes, external widgets and per-user appearance settings.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewUserCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
