package solver

import (
	"sort"

	"github.com/kestrel-labs/wyrmforge/internal/catalog"
	"github.com/kestrel-labs/wyrmforge/internal/domain"
)

// EquipmentSummary is the externally reported shape of one equipped
// piece (spec.md section 6): enough to render it without leaking the
// engine's internal tagged-union representation.
type EquipmentSummary struct {
	ID         string
	Names      map[string]string
	IsAnomaly  bool
	OriginalID string
}

// DecorationUsage reports how many copies of one decoration a build
// spends, resolved from the packed DecorationCombination back to a
// concrete decoration id (spec.md section 6).
type DecorationUsage struct {
	SkillID      string
	DecorationID string
	SlotSize     int
	Count        int
}

// Answer is one fully assembled, externally reportable build.
type Answer struct {
	Parts       map[domain.ArmorPart]EquipmentSummary
	Decorations []DecorationUsage
	Score       int64
}

// Assemble converts the solver's internal Build bag into the ordered,
// externally reportable Answer list. Builds arrive ranked by Solve and
// expanded by FinalizeBuilds from a bag capped at MaxAnswerLength, so
// the list itself can be longer than the cap; Assemble only reshapes
// them, it never re-filters or re-scores.
func Assemble(builds []Build, c *catalog.Catalog) []Answer {
	out := make([]Answer, 0, len(builds))
	for _, b := range builds {
		out = append(out, Answer{
			Parts:       summarize(b.ByPart),
			Decorations: decorationUsages(b.Decos, c),
			Score:       b.Score,
		})
	}
	return out
}

func summarize(byPart map[domain.ArmorPart]domain.Equipment) map[domain.ArmorPart]EquipmentSummary {
	out := make(map[domain.ArmorPart]EquipmentSummary, len(byPart))
	for part, p := range byPart {
		out[part] = EquipmentSummary{
			ID:         p.ID,
			Names:      p.Names,
			IsAnomaly:  p.IsAnomaly,
			OriginalID: p.OriginalID,
		}
	}
	return out
}

// decorationUsages flattens a packed combination into a stable,
// sorted-by-skill-id list of decoration placements. A vector only
// records counts by socket size, so the concrete decoration id is
// resolved against the catalog's ascending-size list for that skill.
func decorationUsages(combo DecorationCombination, c *catalog.Catalog) []DecorationUsage {
	skillIDs := make([]string, 0, len(combo.PerSkill))
	for id := range combo.PerSkill {
		skillIDs = append(skillIDs, id)
	}
	sort.Strings(skillIDs)

	var out []DecorationUsage
	for _, skillID := range skillIDs {
		vec := combo.PerSkill[skillID]
		for size := 1; size <= domain.MaxSlotLevel; size++ {
			count := vec[size-1]
			if count == 0 {
				continue
			}
			out = append(out, DecorationUsage{
				SkillID:      skillID,
				DecorationID: decorationIDForSize(c.DecosBySkill[skillID], size),
				SlotSize:     size,
				Count:        count,
			})
		}
	}
	return out
}

func decorationIDForSize(decos []domain.Decoration, size int) string {
	for _, d := range decos {
		if d.SlotSize == size {
			return d.ID
		}
	}
	return ""
}
