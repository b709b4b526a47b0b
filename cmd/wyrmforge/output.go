package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kestrel-labs/wyrmforge/internal/query"
)

// writeResponse dispatches to the requested output format, grounded on
// vsinha-mrp/pkg/interfaces/cli/output/output.go's Generate switch
// over config.Format.
func writeResponse(resp query.Response, format string) error {
	switch format {
	case "text":
		return writeText(resp)
	case "json":
		return writeJSON(resp)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func writeText(resp query.Response) error {
	fmt.Printf("Skill-set build results\n")
	fmt.Printf("========================\n\n")
	fmt.Printf("correlation id: %s\n", resp.CorrelationID)
	fmt.Printf("builds found:   %d\n\n", len(resp.Builds))

	for _, b := range resp.Builds {
		fmt.Printf("#%d  score=%d\n", b.Rank, b.Score)
		for part, p := range b.Parts {
			label := p.Name
			if label == "" {
				label = p.ID
			}
			fmt.Printf("  %-10s %s\n", part, label)
		}
		for _, d := range b.Decorations {
			fmt.Printf("  deco: %s x%d (skill %s, size %d)\n", d.DecorationID, d.Count, d.SkillID, d.SlotSize)
		}
		fmt.Println()
	}

	if len(resp.Log) > 0 {
		fmt.Println("log:")
		for _, line := range resp.Log {
			fmt.Printf("  %s\n", line)
		}
	}
	return nil
}

func writeJSON(resp query.Response) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
