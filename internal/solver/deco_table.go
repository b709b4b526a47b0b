// Package solver implements the combinatorial search engine: the
// decoration-combination table, the dominance filter, the scorer, the
// candidate generator, the feasibility oracle and the branch-and-bound
// solver. This is the hard part spec.md section 1 calls out; everything
// else in the repository exists to feed it a Catalog and a Request and
// to render its Response.
package solver

import (
	"github.com/kestrel-labs/wyrmforge/internal/catalog"
	"github.com/kestrel-labs/wyrmforge/internal/domain"
)

// DecoComboTable answers, for a skill and a required level, every
// Pareto-minimal socket-cost multiset that realizes that level.
// Grounded on original_source/simulator/src-tauri/src/data/deco_combination.rs,
// reworked from index-by-decoration counts into index-by-socket-size
// counts (domain.SocketVector) up front so every downstream consumer
// works in one coordinate system.
type DecoComboTable struct {
	// combosByLevel[skillID][level-1] is the set of Pareto-minimal
	// socket vectors realizing `level` levels of skillID. Index 0
	// therefore holds the combinations for level 1.
	combosByLevel map[string][][]domain.SocketVector
}

// Build precomputes the table for every skill that has at least one
// decoration, once, at catalog-load time.
func Build(c *catalog.Catalog) *DecoComboTable {
	t := &DecoComboTable{combosByLevel: make(map[string][][]domain.SocketVector)}

	for skillID, decos := range c.DecosBySkill {
		maxLevel := c.MaxLevel(skillID)
		if maxLevel <= 0 || len(decos) == 0 {
			continue
		}

		if len(decos) == 1 {
			t.combosByLevel[skillID] = singleDecoCombos(decos[0], maxLevel)
			continue
		}

		t.combosByLevel[skillID] = multiDecoCombos(decos, maxLevel)
	}

	return t
}

// singleDecoCombos handles the closed-form branch of
// deco_combination.rs: with exactly one decoration granting k levels
// per instance, the unique Pareto-minimal answer for level l is
// ceil(l/k) copies of it.
func singleDecoCombos(d domain.Decoration, maxLevel int) [][]domain.SocketVector {
	combos := make([][]domain.SocketVector, maxLevel)
	for level := 1; level <= maxLevel; level++ {
		count := (level + d.SkillLevel - 1) / d.SkillLevel
		var v domain.SocketVector
		v[d.SlotSize-1] = count
		combos[level-1] = []domain.SocketVector{v}
	}
	return combos
}

// multiDecoCombos enumerates, per level, every count-vector over decos
// (ordered by ascending slot size) whose weighted level sum reaches the
// requirement, pruning any vector a strictly-smaller-socket
// substitution could replace, then eliminates the pointwise-dominated
// survivors. Ported from the DFS-by-decoration enumeration in
// deco_combination.rs's `decos.len() > 1` branch: count vectors are
// indexed by decoration (smallest slot size first), then converted to
// socket-size vectors once pruning is done.
func multiDecoCombos(decos []domain.Decoration, maxLevel int) [][]domain.SocketVector {
	n := len(decos)
	maxCountFor := make([]int, n)
	for i, d := range decos {
		maxCountFor[i] = (maxLevel + d.SkillLevel - 1) / d.SkillLevel
	}

	results := make([][]domain.SocketVector, maxLevel)

	for level := 1; level <= maxLevel; level++ {
		var done [][]int // count-by-decoration vectors that reach `level`

		// temp accumulates every partial assignment seen so far
		// (including the still-untouched all-zero case), across all
		// decoration indices processed up to this point — mirroring
		// deco_combination.rs's skill_temp_combs, which only ever
		// grows. Each decoIdx iterates a frozen snapshot of temp taken
		// before that decoration's counts are layered on, so a
		// partial produced this round isn't immediately reprocessed.
		temp := [][]int{make([]int, n)}

		for decoIdx, maxCount := range maxCountFor {
			deco := decos[decoIdx]
			snapshot := append([][]int(nil), temp...)

			for _, partial := range snapshot {
				base := sumLevels(partial, decos)

				for count := maxCount; count >= 1; count-- {
					total := base + count*deco.SkillLevel
					next := append([]int(nil), partial...)
					next[decoIdx] = count

					if total < level {
						temp = append(temp, next)
						continue
					}

					// Would a strictly smaller socket size already
					// reach the level with the same count? If so this
					// candidate is dominated by that cheaper slot size
					// and is dropped rather than recorded.
					betterExists := false
					for lower := 0; lower < decoIdx; lower++ {
						if base+count*decos[lower].SkillLevel >= level {
							betterExists = true
							break
						}
					}
					if !betterExists {
						done = append(done, next)
					}
				}
			}
		}

		done = pruneDominatedCounts(done)
		results[level-1] = toSocketVectors(done, decos)
	}

	return results
}

func sumLevels(counts []int, decos []domain.Decoration) int {
	total := 0
	for i, c := range counts {
		total += c * decos[i].SkillLevel
	}
	return total
}

// pruneDominatedCounts drops any count vector pointwise >= another
// distinct vector in the set, leaving only the Pareto-minimal survivors.
func pruneDominatedCounts(combos [][]int) [][]int {
	keep := make([]bool, len(combos))
	for i := range keep {
		keep[i] = true
	}

	for i := 0; i < len(combos); i++ {
		if !keep[i] {
			continue
		}
		for j := 0; j < len(combos); j++ {
			if i == j || !keep[j] {
				continue
			}
			if countsGreaterEq(combos[i], combos[j]) {
				keep[i] = false
				break
			}
		}
	}

	var out [][]int
	for i, k := range keep {
		if k {
			out = append(out, combos[i])
		}
	}
	return out
}

func countsGreaterEq(a, b []int) bool {
	equal := true
	for i := range a {
		if a[i] < b[i] {
			return false
		}
		if a[i] != b[i] {
			equal = false
		}
	}
	return !equal
}

func toSocketVectors(combos [][]int, decos []domain.Decoration) []domain.SocketVector {
	out := make([]domain.SocketVector, len(combos))
	for i, combo := range combos {
		var v domain.SocketVector
		for decoIdx, count := range combo {
			if count == 0 {
				continue
			}
			v[decos[decoIdx].SlotSize-1] += count
		}
		out[i] = v
	}
	return out
}

// Combos returns the Pareto-minimal socket vectors realizing at least
// the given required level of a skill, or nil if the skill has no
// decorations or the level is out of range.
func (t *DecoComboTable) Combos(skillID string, level int) []domain.SocketVector {
	levels, ok := t.combosByLevel[skillID]
	if !ok || level <= 0 || level > len(levels) {
		return nil
	}
	return levels[level-1]
}

// HasDecorations reports whether a skill can be satisfied by any
// decoration at all.
func (t *DecoComboTable) HasDecorations(skillID string) bool {
	_, ok := t.combosByLevel[skillID]
	return ok
}

// MinSocketSum returns the smallest total socket count, across every
// Pareto-minimal combo for (skillID, level), used as a cheap
// lower-bound rejection before the full Oracle walk (spec.md 4.5 step 5).
func (t *DecoComboTable) MinSocketSum(skillID string, level int) int {
	combos := t.Combos(skillID, level)
	if len(combos) == 0 {
		return 0
	}
	min := combos[0].Sum()
	for _, c := range combos[1:] {
		if s := c.Sum(); s < min {
			min = s
		}
	}
	return min
}
