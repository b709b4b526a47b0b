// Command wyrmforge loads an equipment catalog and solves skill-set
// build queries against it. Grounded on
// jonkmatsumo-resume-customizer/cmd/resume_agent/main.go for the
// godotenv-then-cobra-Execute entry point shape.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kestrel-labs/wyrmforge/internal/obslog"
)

var rootCmd = &cobra.Command{
	Use:   "wyrmforge",
	Short: "Skill-set build solver",
	Long:  "wyrmforge loads an armor, charm and decoration catalog and finds equipment combinations that satisfy a target skill set.",
}

func main() {
	_ = godotenv.Load()
	obslog.Init()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
