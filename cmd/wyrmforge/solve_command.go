package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kestrel-labs/wyrmforge/internal/domain"
	"github.com/kestrel-labs/wyrmforge/internal/query"
	"github.com/kestrel-labs/wyrmforge/internal/service"
)

var (
	skillFlags  []string
	sexFlag     string
	rarityFloor int
	anomalyPath string
	charmPath   string
	format      string
	weaponSlots []int
	freeSlots   []int
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Find equipment combinations satisfying a required skill set",
	RunE:  runSolve,
}

func init() {
	solveCmd.Flags().StringArrayVar(&skillFlags, "skill", nil, "required skill as id=level, repeatable")
	solveCmd.Flags().StringVar(&sexFlag, "sex", string(domain.SexAll), "sex filter: all, male or female")
	solveCmd.Flags().IntVar(&rarityFloor, "rarity-floor", 0, "rarity below which an anomaly row's base armor is flagged in the log (the row is still applied)")
	solveCmd.Flags().StringVar(&anomalyPath, "anomaly-csv", "", "path to a per-query anomaly crafting CSV")
	solveCmd.Flags().StringVar(&charmPath, "charm-csv", "", "path to a per-query charm CSV")
	solveCmd.Flags().StringVar(&format, "format", "text", "output format: text or json")
	solveCmd.Flags().IntSliceVar(&weaponSlots, "weapon-slots", []int{0, 0, 0}, "the weapon's own raw slot sizes, comma-separated")
	solveCmd.Flags().IntSliceVar(&freeSlots, "free-slots", []int{0, 0, 0, 0}, "sockets by size that must be left unconsumed, comma-separated")
	solveCmd.Flags().StringVar(&armorsPath, "armors", "", "path to the armors JSON file")
	solveCmd.Flags().StringVar(&skillsPath, "skills", "", "path to the skills JSON file")
	solveCmd.Flags().StringVar(&decosPath, "decorations", "", "path to the decorations JSON file")
	_ = solveCmd.MarkFlagRequired("armors")
	_ = solveCmd.MarkFlagRequired("skills")
	_ = solveCmd.MarkFlagRequired("decorations")
	_ = solveCmd.MarkFlagRequired("skill")

	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	required, err := parseSkillFlags(skillFlags)
	if err != nil {
		return err
	}

	c, err := loadCatalog()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	weapon, err := toFixedArray(weaponSlots, domain.RawSlotCount)
	if err != nil {
		return fmt.Errorf("--weapon-slots: %w", err)
	}
	free, err := toSocketVector(freeSlots)
	if err != nil {
		return fmt.Errorf("--free-slots: %w", err)
	}

	req := query.Request{
		RequiredSkills: required,
		WeaponSlots:    weapon,
		FreeSlots:      free,
		Sex:            domain.SexType(sexFlag),
		RarityFloor:    rarityFloor,
	}
	if anomalyPath != "" {
		req.AnomalyCSV, err = os.ReadFile(anomalyPath)
		if err != nil {
			return fmt.Errorf("read anomaly csv: %w", err)
		}
	}
	if charmPath != "" {
		req.CharmCSV, err = os.ReadFile(charmPath)
		if err != nil {
			return fmt.Errorf("read charm csv: %w", err)
		}
	}

	svc := service.New(c)
	resp, err := svc.Solve(req)
	if err != nil {
		return err
	}

	return writeResponse(resp, format)
}

func toFixedArray(values []int, length int) ([domain.RawSlotCount]int, error) {
	var out [domain.RawSlotCount]int
	if len(values) != length {
		return out, fmt.Errorf("expected %d values, got %d", length, len(values))
	}
	copy(out[:], values)
	return out, nil
}

func toSocketVector(values []int) (domain.SocketVector, error) {
	var out domain.SocketVector
	if len(values) != domain.MaxSlotLevel {
		return out, fmt.Errorf("expected %d values, got %d", domain.MaxSlotLevel, len(values))
	}
	copy(out[:], values)
	return out, nil
}

func parseSkillFlags(flags []string) (map[string]int, error) {
	out := make(map[string]int, len(flags))
	for _, f := range flags {
		id, levelStr, ok := strings.Cut(f, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --skill %q: expected id=level", f)
		}
		level, err := strconv.Atoi(levelStr)
		if err != nil {
			return nil, fmt.Errorf("invalid --skill %q: %w", f, err)
		}
		out[id] = level
	}
	return out, nil
}
