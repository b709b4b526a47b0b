package solver

import "github.com/kestrel-labs/wyrmforge/internal/domain"

// DecorationCombination is one concrete way to decorate a build to
// satisfy a set of residual skill requirements: the vector chosen for
// each skill, plus their pointwise sum. Mirrors
// deco_combination.rs's DecorationCombination.
type DecorationCombination struct {
	PerSkill map[string]domain.SocketVector
	Sum      domain.SocketVector
}

// requiredLevels is the residual skill->level map the oracle walks.
type requiredLevels map[string]int

// iterState is the shared setup for AnyFits/EnumerateFits: the Oracle
// is a Cartesian product walk over each residual skill's combo list,
// and both entry points advance the same mixed-radix counter — AnyFits
// stops at the first fit, EnumerateFits collects every one.
type iterState struct {
	skillIDs []string
	combos   [][]domain.SocketVector // combos[i] = t.Combos(skillIDs[i], requiredLevels[skillIDs[i]])
	indices  []int
}

func (t *DecoComboTable) newIterState(req requiredLevels) *iterState {
	ids := make([]string, 0, len(req))
	for id := range req {
		ids = append(ids, id)
	}
	combos := make([][]domain.SocketVector, len(ids))
	for i, id := range ids {
		combos[i] = t.Combos(id, req[id])
	}
	return &iterState{skillIDs: ids, combos: combos, indices: make([]int, len(ids))}
}

func (s *iterState) current() DecorationCombination {
	perSkill := make(map[string]domain.SocketVector, len(s.skillIDs))
	var sum domain.SocketVector
	for i, id := range s.skillIDs {
		v := s.combos[i][s.indices[i]]
		perSkill[id] = v
		sum = sum.Add(v)
	}
	return DecorationCombination{PerSkill: perSkill, Sum: sum}
}

// advance moves the mixed-radix counter to the next combination,
// reporting false once every combination has been visited. Ported
// from deco_combination.rs's proceed_next_iter.
func (s *iterState) advance() bool {
	for i := range s.indices {
		s.indices[i]++
		if s.indices[i] < len(s.combos[i]) {
			return true
		}
		s.indices[i] = 0
	}
	return false
}

// AnyFits reports whether at least one assignment of decorations to
// the required skills fits within the available sockets, short
// circuiting on the first fit found.
func (t *DecoComboTable) AnyFits(req map[string]int, available domain.SocketVector) bool {
	if len(req) == 0 {
		return true
	}
	s := t.newIterState(req)
	for _, combos := range s.combos {
		if len(combos) == 0 {
			return false // a required skill has no realizable combo at all
		}
	}

	for {
		if available.Fits(s.current().Sum) {
			return true
		}
		if !s.advance() {
			return false
		}
	}
}

// EnumerateFits returns every DecorationCombination that could realize
// req, independent of any socket budget; callers filter by
// availability themselves (spec.md section 4.1).
func (t *DecoComboTable) EnumerateFits(req map[string]int) []DecorationCombination {
	if len(req) == 0 {
		return nil
	}
	s := t.newIterState(req)
	for _, combos := range s.combos {
		if len(combos) == 0 {
			return nil
		}
	}

	var out []DecorationCombination
	for {
		out = append(out, s.current())
		if !s.advance() {
			break
		}
	}
	return out
}
