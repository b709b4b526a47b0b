package solver

import (
	"sort"

	"github.com/kestrel-labs/wyrmforge/internal/catalog"
	"github.com/kestrel-labs/wyrmforge/internal/domain"
)

// MaxAnswerLength caps how many builds the solver keeps, ranked by
// score, regardless of how many candidates turn out feasible
// (spec.md section 4.5, MAX_ANSWER_LENGTH).
const MaxAnswerLength = 200

// Build is one feasible, scored equipment combination. Decos is left
// at its zero value here; FinalizeBuilds fills it in once a bag entry
// is expanded into its concrete (build, packing) pairs.
type Build struct {
	ByPart map[domain.ArmorPart]domain.Equipment
	Decos  DecorationCombination
	Score  int64
}

// Solve walks every candidate 6-tuple, rejects the infeasible ones,
// and keeps the MaxAnswerLength best by score (spec.md section 4.5,
// steps 1-7; step 8's decoration packing and slot-only expansion is
// FinalizeBuilds, run once over the already-capped bag):
//
//  1. subtract each tuple's own granted skills from the requirement
//  2. any residual left in a non-deco-able skill kills the candidate
//     outright, since nothing can fill it but the armor itself
//  3. the remaining residual is folded into a decoration demand and
//     checked against a cheap lower bound before paying for the full
//     Oracle walk
//  4. survivors are scored and inserted into a capped, rank-ordered bag
//
// weaponSockets is the weapon's own slot vector, added to every
// candidate's pooled sockets; freeSlots is the set of sockets that
// must be left unconsumed and is reserved out of the available budget
// before any decoration demand is checked against it (spec.md section
// 6's query request, "freeSlots").
func Solve(required map[string]int, candidates []Candidate, skills Skillset, table *DecoComboTable, c *catalog.Catalog, weaponSockets, freeSlots domain.SocketVector) []Build {
	var bag []Build

	for _, cand := range candidates {
		residual := residualSkills(required, cand.ByPart)
		if hasUnfillableResidual(residual, skills) {
			continue
		}

		decoReq := positiveOnly(residual)
		available, ok := availableBudget(cand.ByPart, weaponSockets, freeSlots)
		if !ok {
			continue
		}

		if !withinSocketBudget(decoReq, available, table) {
			continue
		}
		if !table.AnyFits(decoReq, available) {
			continue
		}

		score := ScoreBuild(cand.ByPart, skills, c)
		bag = insertRanked(bag, Build{ByPart: cand.ByPart, Score: score}, MaxAnswerLength)
	}

	return bag
}

// availableBudget folds the weapon's own sockets into a build's pooled
// armor sockets and then reserves freeSlots out of the total via the
// same slot-promotion sweep Fits/Consume use elsewhere, so "free"
// sockets are held back with promotion-aware accounting rather than a
// naive per-size subtraction. ok is false if freeSlots itself cannot
// be reserved, which makes the candidate infeasible regardless of its
// skill requirement.
func availableBudget(byPart map[domain.ArmorPart]domain.Equipment, weaponSockets, freeSlots domain.SocketVector) (domain.SocketVector, bool) {
	total := aggregateSockets(byPart).Add(weaponSockets)
	reserve := freeSlots
	ok := total.Consume(&reserve)
	return total, ok
}

// residualSkills returns, per required skill, how much more level a
// candidate's own armor-granted skills still need to reach. Granted
// levels beyond the requirement are capped; a build never "owes"
// negative levels.
func residualSkills(required map[string]int, byPart map[domain.ArmorPart]domain.Equipment) map[string]int {
	granted := map[string]int{}
	for _, p := range byPart {
		for id, lvl := range p.Skills {
			granted[id] += lvl
		}
	}

	residual := make(map[string]int, len(required))
	for id, need := range required {
		have := granted[id]
		if have > need {
			have = need
		}
		residual[id] = need - have
	}
	return residual
}

func positiveOnly(residual map[string]int) map[string]int {
	out := map[string]int{}
	for id, lvl := range residual {
		if lvl > 0 {
			out[id] = lvl
		}
	}
	return out
}

// hasUnfillableResidual reports whether any non-deco-able skill still
// has a shortfall: nothing but the armor pieces themselves can grant
// those skills, so a shortfall there is a hard rejection.
func hasUnfillableResidual(residual map[string]int, skills Skillset) bool {
	for id, lvl := range residual {
		if lvl <= 0 {
			continue
		}
		if _, decoAble := skills.DecoAble[id]; !decoAble {
			return true
		}
	}
	return false
}

func aggregateSockets(byPart map[domain.ArmorPart]domain.Equipment) domain.SocketVector {
	var total domain.SocketVector
	for _, p := range byPart {
		total = total.Add(p.Slots)
	}
	return total
}

// withinSocketBudget is the cheap lower-bound rejection ahead of the
// full Oracle walk (spec.md section 4.5 step 5): summing each residual
// skill's cheapest Pareto-minimal socket cost, ignoring slot
// promotion, gives a necessary (not sufficient) condition. A candidate
// failing this can never pass the full oracle either.
func withinSocketBudget(decoReq map[string]int, available domain.SocketVector, table *DecoComboTable) bool {
	need := 0
	for id, lvl := range decoReq {
		need += table.MinSocketSum(id, lvl)
	}
	return need <= available.Sum()
}

// insertRanked inserts b into bag, kept sorted by descending score,
// and truncates to cap. Ties keep the earlier-inserted build first,
// which in practice means the build produced earlier by the candidate
// generator's descending-score ordering.
func insertRanked(bag []Build, b Build, cap int) []Build {
	i := sort.Search(len(bag), func(i int) bool { return bag[i].Score < b.Score })
	bag = append(bag, Build{})
	copy(bag[i+1:], bag[i:])
	bag[i] = b
	if len(bag) > cap {
		bag = bag[:cap]
	}
	return bag
}

