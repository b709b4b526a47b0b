package solver

import (
	"sort"

	"github.com/kestrel-labs/wyrmforge/internal/catalog"
	"github.com/kestrel-labs/wyrmforge/internal/domain"
)

// Candidate is one ordered 6-tuple of equipment: one piece per body
// part plus a charm.
type Candidate struct {
	ByPart map[domain.ArmorPart]domain.Equipment
}

// ID is the FULLEQUIP-... composite identifier used for deduplication.
func (c Candidate) ID() string { return domain.CompositeID(c.ByPart) }

func partsInOrder() []domain.ArmorPart {
	out := make([]domain.ArmorPart, 0, len(domain.BodyParts)+1)
	out = append(out, domain.BodyParts...)
	return append(out, domain.PartTalisman)
}

// BuildUniquePools returns, per part, the pieces that grant at least
// one non-deco-able skill plus that part's empty placeholder
// (spec.md section 4.4 step 1).
func BuildUniquePools(armorsByPart map[domain.ArmorPart][]domain.Equipment, charms []domain.Equipment, nonDecoAble map[string]int, sex domain.SexType) map[domain.ArmorPart][]domain.Equipment {
	pools := make(map[domain.ArmorPart][]domain.Equipment, len(domain.BodyParts)+1)
	for _, part := range domain.BodyParts {
		pools[part] = append(filterGranting(armorsByPart[part], nonDecoAble, sex), domain.NewEmpty(part))
	}
	pools[domain.PartTalisman] = append(filterGranting(charms, nonDecoAble, domain.SexAll), domain.NewEmpty(domain.PartTalisman))
	return pools
}

func filterGranting(pieces []domain.Equipment, required map[string]int, sex domain.SexType) []domain.Equipment {
	var out []domain.Equipment
	for _, p := range pieces {
		if !p.SexType.Fits(sex) {
			continue
		}
		for skillID := range required {
			if p.SkillLevel(skillID) > 0 {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// PossibleUniqueTuples enumerates the Cartesian product of the unique
// pools and keeps only the 6-tuples whose combined skills already
// satisfy every non-deco-able requirement with no decorations and no
// free slots at all (spec.md section 4.4 steps 2-3: equivalent to
// FullEquipments.get_possible_combs(N, {}, N) in the original engine,
// since any shortfall left in a no-deco skill is definitionally
// unsatisfiable). The result is ordered by descending build score.
func PossibleUniqueTuples(pools map[domain.ArmorPart][]domain.Equipment, nonDecoAble map[string]int, skills Skillset, c *catalog.Catalog) []Candidate {
	order := partsInOrder()

	var results []Candidate
	acc := make(map[domain.ArmorPart]domain.Equipment, len(order))

	var walk func(i int)
	walk = func(i int) {
		if i == len(order) {
			if satisfiesFully(acc, nonDecoAble) {
				snapshot := make(map[domain.ArmorPart]domain.Equipment, len(acc))
				for k, v := range acc {
					snapshot[k] = v
				}
				results = append(results, Candidate{ByPart: snapshot})
			}
			return
		}
		part := order[i]
		for _, p := range pools[part] {
			acc[part] = p
			walk(i + 1)
		}
	}
	walk(0)

	sort.SliceStable(results, func(i, j int) bool {
		return ScoreBuild(results[i].ByPart, skills, c) > ScoreBuild(results[j].ByPart, skills, c)
	})
	return results
}

func satisfiesFully(byPart map[domain.ArmorPart]domain.Equipment, required map[string]int) bool {
	sum := map[string]int{}
	for _, p := range byPart {
		for id, lvl := range p.Skills {
			sum[id] += lvl
		}
	}
	for id, lvl := range required {
		if sum[id] < lvl {
			return false
		}
	}
	return true
}

// expansionPools, for a single part, is what an empty placeholder gets
// replaced with: the unique (non-deco-able-granting) pool together with
// the part's empty placeholder, the
// deco-bearing (Y-skill-granting) pool, and the slot-only pieces whose
// socket signature isn't already represented by either (spec.md
// section 4.4 step 4).
func expansionPools(part domain.ArmorPart, allPieces []domain.Equipment, nonDecoAble, decoAble map[string]int, sex domain.SexType) []domain.Equipment {
	unique := filterGranting(allPieces, nonDecoAble, sex)
	decoBearing := filterGranting(allPieces, decoAble, sex)

	signature := func(raw [domain.RawSlotCount]int) [domain.RawSlotCount]int {
		sort.Ints(raw[:])
		return raw
	}

	covered := make(map[[domain.RawSlotCount]int]bool, len(unique)+len(decoBearing))
	for _, p := range unique {
		covered[signature(p.Raw)] = true
	}
	for _, p := range decoBearing {
		covered[signature(p.Raw)] = true
	}

	var slotOnly []domain.Equipment
	seenSignature := make(map[[domain.RawSlotCount]int]bool)
	for _, p := range allPieces {
		if !p.SexType.Fits(sex) {
			continue
		}
		sig := signature(p.Raw)
		if covered[sig] || seenSignature[sig] {
			continue
		}
		seenSignature[sig] = true
		slotOnly = append(slotOnly, domain.NewSlotOnly(part, p.Raw))
	}

	out := make([]domain.Equipment, 0, len(unique)+1+len(decoBearing)+len(slotOnly))
	out = append(out, unique...)
	out = append(out, domain.NewEmpty(part))
	out = append(out, decoBearing...)
	out = append(out, slotOnly...)
	return out
}

// ExpandAndDeduplicate replaces every empty placeholder in each
// possible-unique tuple with its part's expansion pools, crosses the
// result, and drops duplicate composite ids (spec.md section 4.4 steps
// 4-5). Per-tuple pools are visited smallest-first to keep the nested
// loops as narrow as possible before the larger pools are reached.
func ExpandAndDeduplicate(
	uniqueTuples []Candidate,
	armorsByPart map[domain.ArmorPart][]domain.Equipment,
	charms []domain.Equipment,
	nonDecoAble, decoAble map[string]int,
	sex domain.SexType,
) []Candidate {
	seen := make(map[string]bool)
	var out []Candidate

	allPiecesByPart := func(part domain.ArmorPart) []domain.Equipment {
		if part == domain.PartTalisman {
			return charms
		}
		return armorsByPart[part]
	}

	for _, tuple := range uniqueTuples {
		order := partsInOrder()
		pools := make([][]domain.Equipment, len(order))
		for i, part := range order {
			chosen := tuple.ByPart[part]
			if chosen.IsEmpty {
				pools[i] = expansionPools(part, allPiecesByPart(part), nonDecoAble, decoAble, sex)
			} else {
				pools[i] = []domain.Equipment{chosen}
			}
		}

		indexOrder := make([]int, len(order))
		for i := range indexOrder {
			indexOrder[i] = i
		}
		sort.SliceStable(indexOrder, func(i, j int) bool {
			return len(pools[indexOrder[i]]) < len(pools[indexOrder[j]])
		})

		acc := make(map[domain.ArmorPart]domain.Equipment, len(order))
		var walk func(pos int)
		walk = func(pos int) {
			if pos == len(indexOrder) {
				cand := Candidate{ByPart: cloneByPart(acc)}
				id := cand.ID()
				if !seen[id] {
					seen[id] = true
					out = append(out, cand)
				}
				return
			}
			idx := indexOrder[pos]
			part := order[idx]
			for _, p := range pools[idx] {
				acc[part] = p
				walk(pos + 1)
			}
		}
		walk(0)
	}

	return out
}

func cloneByPart(m map[domain.ArmorPart]domain.Equipment) map[domain.ArmorPart]domain.Equipment {
	out := make(map[domain.ArmorPart]domain.Equipment, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
