// Package catalog assembles the immutable tables the solver searches:
// armors by part, skills, decorations by the skill they grant,
// charms, and the synthetic empty/slot-only/anomaly pieces. Grounded
// on the teacher's in-memory repositories
// (vsinha-mrp/pkg/infrastructure/repositories/memory/item_repository.go):
// a slice plus an id->index map per entity, loaded once and read many
// times.
package catalog

import (
	"fmt"
	"sort"

	"github.com/kestrel-labs/wyrmforge/internal/domain"
)

// Catalog is the full set of tables the solver consults for one
// process lifetime (until an explicit Reload, see internal/service).
type Catalog struct {
	Skills map[string]domain.Skill

	// ArmorsByPart holds every concrete armor piece (including
	// anomaly-affected ones), keyed by body part.
	ArmorsByPart map[domain.ArmorPart][]domain.Equipment

	// DecosBySkill holds, per skill, the decorations that grant it,
	// sorted by ascending slot size (DecoComboTable depends on this
	// order for its slot-minimality pruning).
	DecosBySkill map[string][]domain.Decoration

	// EmptyByPart is the synthetic "any piece, including none"
	// placeholder for each body part.
	EmptyByPart map[domain.ArmorPart]domain.Equipment

	// Charms is refreshed per query from CSV input (spec.md section 6);
	// it starts empty and is never populated from the static JSON feed.
	Charms []domain.Equipment
}

// New builds a Catalog from ingested armor rows, skills, and
// decorations. It never returns an error for malformed-but-parseable
// data; per spec.md section 7 the ingestion layer is responsible for
// discarding bad rows before they reach the catalog, so the one error
// this returns is the internal-invariant class: a decoration naming a
// skill absent from the skills table.
func New(armors []domain.Equipment, skills []domain.Skill, decos []domain.Decoration) (*Catalog, error) {
	c := &Catalog{
		Skills:       make(map[string]domain.Skill, len(skills)),
		ArmorsByPart: make(map[domain.ArmorPart][]domain.Equipment, len(domain.BodyParts)),
		DecosBySkill: make(map[string][]domain.Decoration),
		EmptyByPart:  make(map[domain.ArmorPart]domain.Equipment, len(domain.BodyParts)),
	}

	for _, s := range skills {
		c.Skills[s.ID] = s
	}

	for _, d := range decos {
		if _, ok := c.Skills[d.SkillID]; !ok {
			return nil, fmt.Errorf("decoration %s references unknown skill %s", d.ID, d.SkillID)
		}
		c.DecosBySkill[d.SkillID] = append(c.DecosBySkill[d.SkillID], d)
	}
	for skillID, list := range c.DecosBySkill {
		sort.Slice(list, func(i, j int) bool { return list[i].SlotSize < list[j].SlotSize })
		c.DecosBySkill[skillID] = list
	}

	for _, a := range armors {
		c.ArmorsByPart[a.Part] = append(c.ArmorsByPart[a.Part], a)
	}

	for _, part := range domain.BodyParts {
		c.EmptyByPart[part] = domain.NewEmpty(part)
	}

	return c, nil
}

// RarityFlag notes an anomaly row that was applied despite its base
// armor falling below the configured rarity floor — accepted, not
// rejected, per the "logged, not enforced" reading of MR_RARITY_FLOOR.
type RarityFlag struct {
	BaseArmorDisplayName string
	Rarity               int
	RarityFloor          int
}

// ApplyAnomalies returns a new Catalog whose ArmorsByPart also contains
// the affected pieces produced by each diff, looked up against
// armors indexed by display name. Unknown display names are skipped
// and returned in the `skipped` slice rather than failing the whole
// batch, per spec.md section 7's malformed-row policy. A diff whose
// base armor's rarity falls below rarityFloor is still applied, but
// reported in `flagged` so the caller can note it as unusual.
func (c *Catalog) ApplyAnomalies(diffs []domain.AnomalyDiff, rarityFloor int) (next *Catalog, skipped []domain.AnomalyDiff, flagged []RarityFlag) {
	byName := make(map[string]domain.Equipment)
	for _, list := range c.ArmorsByPart {
		for _, a := range list {
			for _, name := range a.Names {
				byName[name] = a
			}
		}
	}

	next = &Catalog{
		Skills:       c.Skills,
		ArmorsByPart: make(map[domain.ArmorPart][]domain.Equipment, len(c.ArmorsByPart)),
		DecosBySkill: c.DecosBySkill,
		EmptyByPart:  c.EmptyByPart,
		Charms:       c.Charms,
	}
	for part, list := range c.ArmorsByPart {
		next.ArmorsByPart[part] = append([]domain.Equipment(nil), list...)
	}

	for i, diff := range diffs {
		base, ok := byName[diff.BaseArmorDisplayName]
		if !ok {
			skipped = append(skipped, diff)
			continue
		}
		if base.Rarity < rarityFloor {
			flagged = append(flagged, RarityFlag{
				BaseArmorDisplayName: diff.BaseArmorDisplayName,
				Rarity:               base.Rarity,
				RarityFloor:          rarityFloor,
			})
		}
		affected := domain.ApplyAnomaly(i, base, diff)
		next.ArmorsByPart[affected.Part] = append(next.ArmorsByPart[affected.Part], affected)
	}

	return next, skipped, flagged
}

// WithCharms returns a shallow copy of the catalog with Charms
// replaced, used when a query supplies its own charm CSV.
func (c *Catalog) WithCharms(charms []domain.Equipment) *Catalog {
	next := *c
	next.Charms = charms
	return &next
}

// MaxLevel returns a skill's configured maximum level, or 0 if the
// skill is unknown to the catalog.
func (c *Catalog) MaxLevel(skillID string) int {
	return c.Skills[skillID].MaxLevel
}
