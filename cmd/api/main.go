// @title Medication Tracker API
// @version 1.0
// @description Agenda de dosis, stock y vencimiento de medicamentos, citas médicas y configuración de alertas.
// @BasePath /
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "medication-tracker",
		Short: "Medication tracker API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(tokenCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
