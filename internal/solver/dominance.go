package solver

import "github.com/kestrel-labs/wyrmforge/internal/domain"

// Dominates reports whether a is pointwise dominated by b for search
// purposes: b's sockets are at least as good size-for-size, b grants
// every skill a grants at least as high a level, and b doesn't lack
// anything a has. A dominated piece can never produce a strictly
// better build than substituting b for it, so it is safe to discard
// (spec.md section 4.3).
func Dominates(b, a domain.Equipment) bool {
	if !b.Slots.GreaterEq(a.Slots) {
		return false
	}
	for skillID, level := range a.Skills {
		if b.Skills[skillID] < level {
			return false
		}
	}
	return true
}

// FilterDominated keeps only the equipment in `pieces` that no other
// piece in the same slice dominates. Scan order is unspecified; ties
// are broken by id so the result is deterministic (spec.md section
// 4.3's "Order of scan is unspecified"). Dominance is evaluated fully
// pairwise rather than only against adjacent neighbors — the open
// question in spec.md's design notes about an adjacent-only variant is
// resolved here in favor of full pairwise comparison, accepting the
// extra cost for a filter that never lets a dominated piece through.
func FilterDominated(pieces []domain.Equipment) []domain.Equipment {
	keep := make([]bool, len(pieces))
	for i := range keep {
		keep[i] = true
	}

	for i, a := range pieces {
		for j, b := range pieces {
			if i == j {
				continue
			}
			if !Dominates(b, a) {
				continue
			}
			if Dominates(a, b) && a.ID < b.ID {
				// a and b are equivalent (dominate each other); keep
				// whichever sorts first by id as the deterministic
				// tiebreak, independent of scan order.
				continue
			}
			keep[i] = false
			break
		}
	}

	out := make([]domain.Equipment, 0, len(pieces))
	for i, k := range keep {
		if k {
			out = append(out, pieces[i])
		}
	}
	return out
}
