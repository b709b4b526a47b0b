package solver

import (
	"sort"

	"github.com/kestrel-labs/wyrmforge/internal/catalog"
	"github.com/kestrel-labs/wyrmforge/internal/domain"
)

// FinalizeBuilds performs the closing step of spec.md section 4.5: for
// every entry the bag kept, enumerate every decoration packing that
// still fits (not just the cheapest one), and cross any slot-only
// placeholder part with every concrete piece sharing its socket
// signature. The bag's ranking and cap are untouched; this only
// expands each ranked entry into the set of concrete (build, packing)
// pairs it stands for.
func FinalizeBuilds(bag []Build, required map[string]int, table *DecoComboTable, c *catalog.Catalog, weaponSockets, freeSlots domain.SocketVector, sex domain.SexType) []Build {
	var out []Build
	for _, b := range bag {
		residual := positiveOnly(residualSkills(required, b.ByPart))
		available, ok := availableBudget(b.ByPart, weaponSockets, freeSlots)
		if !ok {
			continue
		}

		packings := packingsFor(residual, available, table)
		concretes := concreteSubstitutions(b.ByPart, c, sex)

		for _, byPart := range concretes {
			for _, decos := range packings {
				out = append(out, Build{ByPart: byPart, Decos: decos, Score: b.Score})
			}
		}
	}
	return out
}

// packingsFor lists every decoration packing satisfying decoReq within
// available, or a single empty packing when nothing is required.
func packingsFor(decoReq map[string]int, available domain.SocketVector, table *DecoComboTable) []DecorationCombination {
	if len(decoReq) == 0 {
		return []DecorationCombination{{PerSkill: map[string]domain.SocketVector{}}}
	}
	var out []DecorationCombination
	for _, combo := range table.EnumerateFits(decoReq) {
		if available.Fits(combo.Sum) {
			out = append(out, combo)
		}
	}
	return out
}

// concreteSubstitutions crosses every slot-only part in byPart with the
// catalog pieces sharing its exact socket signature, producing one
// ByPart map per combination. A part that isn't slot-only contributes
// only itself.
func concreteSubstitutions(byPart map[domain.ArmorPart]domain.Equipment, c *catalog.Catalog, sex domain.SexType) []map[domain.ArmorPart]domain.Equipment {
	order := partsInOrder()
	options := make([][]domain.Equipment, len(order))
	for i, part := range order {
		p := byPart[part]
		if !p.IsSlotOnly {
			options[i] = []domain.Equipment{p}
			continue
		}
		matches := concretePiecesForSignature(part, p.Raw, c, sex)
		if len(matches) == 0 {
			matches = []domain.Equipment{p}
		}
		options[i] = matches
	}

	var out []map[domain.ArmorPart]domain.Equipment
	acc := make(map[domain.ArmorPart]domain.Equipment, len(order))
	var walk func(i int)
	walk = func(i int) {
		if i == len(order) {
			out = append(out, cloneByPart(acc))
			return
		}
		for _, p := range options[i] {
			acc[order[i]] = p
			walk(i + 1)
		}
	}
	walk(0)
	return out
}

// concretePiecesForSignature finds every concrete piece whose socket
// signature matches a slot-only placeholder's. NewSlotOnly always
// normalizes its Raw field to ascending order, so the comparison sorts
// each candidate piece's own Raw the same way before comparing.
func concretePiecesForSignature(part domain.ArmorPart, sortedRaw [domain.RawSlotCount]int, c *catalog.Catalog, sex domain.SexType) []domain.Equipment {
	source := c.ArmorsByPart[part]
	if part == domain.PartTalisman {
		source = c.Charms
	}
	var out []domain.Equipment
	for _, p := range source {
		if !p.SexType.Fits(sex) {
			continue
		}
		candidate := p.Raw
		sort.Ints(candidate[:])
		if candidate == sortedRaw {
			out = append(out, p)
		}
	}
	return out
}
