package solver

import (
	"github.com/shopspring/decimal"

	"github.com/kestrel-labs/wyrmforge/internal/catalog"
	"github.com/kestrel-labs/wyrmforge/internal/domain"
)

// NoDecoWeight is the large per-level weight given to a required skill
// that cannot be reached by any decoration (spec.md section 6,
// NO_DECO_WEIGHT). It exists to push armor naturally granting a
// rare skill to the front of the candidate ordering, ahead of armor
// that merely has good sockets.
const NoDecoWeight = 1000

// size4Bonus is the extra per-socket weight a size-4 socket earns on
// top of its own size, reflecting how disproportionately valuable the
// largest sockets are (spec.md section 6, SIZE4_BONUS).
const size4Bonus = 2

// socketWeight is w_i from spec.md 4.2: weight i for every size except
// size 4, which gets i+SIZE4_BONUS.
func socketWeight(size int) int64 {
	if size == domain.MaxSlotLevel {
		return int64(size + size4Bonus)
	}
	return int64(size)
}

// Skillset partitions the required skills into the deco-able set Y
// (skills with at least one decoration in the catalog) and the
// non-deco-able set N, used throughout scoring and candidate
// generation (spec.md section 4.2, 4.4).
type Skillset struct {
	DecoAble    map[string]int
	NonDecoAble map[string]int
}

// Partition splits a required-skill map against the catalog's
// DecoComboTable.
func Partition(required map[string]int, t *DecoComboTable) Skillset {
	s := Skillset{DecoAble: map[string]int{}, NonDecoAble: map[string]int{}}
	for id, level := range required {
		if t.HasDecorations(id) {
			s.DecoAble[id] = level
		} else {
			s.NonDecoAble[id] = level
		}
	}
	return s
}

// maxSocketSize returns the largest slot size among decorations
// granting a skill, or 1 if the skill has none (defensive default;
// callers only reach this for skills already known to be deco-able).
func maxSocketSize(decos []domain.Decoration) int {
	max := 1
	for _, d := range decos {
		if d.SlotSize > max {
			max = d.SlotSize
		}
	}
	return max
}

// ScorePiece scores a single equipment piece against the required
// skill partition (spec.md section 4.2). The score is an ordering
// heuristic only: it decides which candidates the branch-and-bound
// walk tries first, never whether a build is accepted.
func ScorePiece(p domain.Equipment, skills Skillset, c *catalog.Catalog) int64 {
	total := decimal.Zero

	for skillID, required := range skills.DecoAble {
		granted := p.SkillLevel(skillID)
		if granted == 0 {
			continue
		}
		capped := min(granted, required)
		weight := decimal.NewFromInt(int64(maxSocketSize(c.DecosBySkill[skillID])))
		total = total.Add(decimal.NewFromInt(int64(capped)).Mul(weight))
	}

	for skillID, required := range skills.NonDecoAble {
		granted := p.SkillLevel(skillID)
		if granted == 0 {
			continue
		}
		capped := min(granted, required)
		total = total.Add(decimal.NewFromInt(int64(capped) * NoDecoWeight))
	}

	for size := 1; size <= domain.MaxSlotLevel; size++ {
		count := p.Slots[size-1]
		if count == 0 {
			continue
		}
		total = total.Add(decimal.NewFromInt(int64(count) * socketWeight(size)))
	}

	return total.IntPart()
}

// ScoreBuild sums the score of each piece in a 6-tuple.
func ScoreBuild(byPart map[domain.ArmorPart]domain.Equipment, skills Skillset, c *catalog.Catalog) int64 {
	var total int64
	for _, p := range byPart {
		total += ScorePiece(p, skills, c)
	}
	return total
}
