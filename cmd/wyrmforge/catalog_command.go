package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kestrel-labs/wyrmforge/internal/catalog"
	"github.com/kestrel-labs/wyrmforge/internal/catalogio"
	"github.com/kestrel-labs/wyrmforge/internal/solver"
)

var (
	armorsPath string
	skillsPath string
	decosPath  string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect a static equipment catalog",
}

var catalogLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the armor, skill and decoration JSON files and report what was ingested",
	RunE:  runCatalogLoad,
}

func init() {
	catalogLoadCmd.Flags().StringVar(&armorsPath, "armors", "", "path to the armors JSON file")
	catalogLoadCmd.Flags().StringVar(&skillsPath, "skills", "", "path to the skills JSON file")
	catalogLoadCmd.Flags().StringVar(&decosPath, "decorations", "", "path to the decorations JSON file")
	_ = catalogLoadCmd.MarkFlagRequired("armors")
	_ = catalogLoadCmd.MarkFlagRequired("skills")
	_ = catalogLoadCmd.MarkFlagRequired("decorations")

	catalogCmd.AddCommand(catalogLoadCmd)
	rootCmd.AddCommand(catalogCmd)
}

func loadCatalog() (*catalog.Catalog, error) {
	skills, err := catalogio.LoadSkills(skillsPath)
	if err != nil {
		return nil, err
	}
	decos, err := catalogio.LoadDecorations(decosPath)
	if err != nil {
		return nil, err
	}
	armors, skippedRows, err := catalogio.LoadArmors(armorsPath)
	if err != nil {
		return nil, err
	}
	for _, row := range skippedRows {
		fmt.Printf("discarded armors.json row %d: unrecognized part or out-of-range slot\n", row)
	}

	c, err := catalog.New(armors, skills, decos)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func runCatalogLoad(cmd *cobra.Command, args []string) error {
	c, err := loadCatalog()
	if err != nil {
		return err
	}

	total := 0
	for _, list := range c.ArmorsByPart {
		total += len(list)
	}

	start := time.Now()
	solver.Build(c)
	buildTime := time.Since(start)

	fmt.Printf("skills:       %d\n", len(c.Skills))
	fmt.Printf("decorations:  %d\n", countDecos(c))
	fmt.Printf("armor pieces: %d\n", total)
	fmt.Printf("charms:       %d\n", len(c.Charms))
	fmt.Printf("deco table build time: %s\n", buildTime)
	return nil
}

func countDecos(c *catalog.Catalog) int {
	n := 0
	for _, list := range c.DecosBySkill {
		n += len(list)
	}
	return n
}
