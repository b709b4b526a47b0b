// Package service wires the catalog, the deco-combo table and the
// solver pipeline behind a process-wide handle that supports a live
// catalog Reload. Grounded on the teacher's Engine
// (vsinha-mrp/pkg/mrp/engine.go), which guards its explosion cache with
// a sync.RWMutex so planning reads never block on each other while a
// write (there: cache eviction, here: a catalog reload) takes an
// exclusive lock.
package service

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/kestrel-labs/wyrmforge/internal/catalog"
	"github.com/kestrel-labs/wyrmforge/internal/domain"
	"github.com/kestrel-labs/wyrmforge/internal/obslog"
	"github.com/kestrel-labs/wyrmforge/internal/query"
	"github.com/kestrel-labs/wyrmforge/internal/queryio"
	"github.com/kestrel-labs/wyrmforge/internal/solver"
)

// SolveService owns the live catalog and its derived DecoComboTable,
// and answers solve queries against a consistent snapshot of both.
type SolveService struct {
	mu      sync.RWMutex
	catalog *catalog.Catalog
	table   *solver.DecoComboTable
}

// New builds a service around an already-loaded catalog.
func New(c *catalog.Catalog) *SolveService {
	return &SolveService{catalog: c, table: solver.Build(c)}
}

// Reload atomically swaps in a new catalog and its rebuilt
// DecoComboTable, taking the exclusive lock only for the swap itself;
// the (potentially slow) Build call runs before the lock is taken so
// in-flight Solve calls are never blocked by it.
func (s *SolveService) Reload(c *catalog.Catalog) {
	table := solver.Build(c)
	s.mu.Lock()
	s.catalog = c
	s.table = table
	s.mu.Unlock()
}

// Solve runs one query end to end: apply the per-query anomaly and
// charm CSVs on top of a read-locked snapshot of the catalog, generate
// and rank candidates, and assemble the externally reportable answer.
func (s *SolveService) Solve(req query.Request) (query.Response, error) {
	if err := req.Validate(); err != nil {
		return query.Response{}, fmt.Errorf("invalid request: %w", err)
	}

	correlationID := uuid.NewString()
	trace := obslog.NewTrace(correlationID)

	s.mu.RLock()
	c, table := s.catalog, s.table
	s.mu.RUnlock()

	if len(req.AnomalyCSV) > 0 {
		diffs, skipped, err := queryio.LoadAnomalyDiffs(bytes.NewReader(req.AnomalyCSV))
		if err != nil {
			return query.Response{}, fmt.Errorf("anomaly csv: %w", err)
		}
		for _, sk := range skipped {
			trace.Warnf("discarded anomaly row %d: %s", sk.Line, sk.Reason)
		}
		for i := range diffs {
			diffs[i].SkillDiffs = dropUnknownSkills(diffs[i].SkillDiffs, c.Skills, trace, "anomaly row")
		}
		var applySkipped []domain.AnomalyDiff
		var flagged []catalog.RarityFlag
		c, applySkipped, flagged = c.ApplyAnomalies(diffs, req.RarityFloor)
		for _, diff := range applySkipped {
			trace.Warnf("anomaly row referenced unknown base armor %q", diff.BaseArmorDisplayName)
		}
		for _, f := range flagged {
			trace.Warnf("anomaly row applied to %q at rarity %d, below the configured floor of %d", f.BaseArmorDisplayName, f.Rarity, f.RarityFloor)
		}
		// DecosBySkill is untouched by ApplyAnomalies, so the existing
		// DecoComboTable still applies to the widened catalog.
	}

	var charms []domain.Equipment
	if len(req.CharmCSV) > 0 {
		var skipped []queryio.SkippedRow
		var err error
		charms, skipped, err = queryio.LoadCharms(bytes.NewReader(req.CharmCSV))
		if err != nil {
			return query.Response{}, fmt.Errorf("charm csv: %w", err)
		}
		for _, sk := range skipped {
			trace.Warnf("discarded charm row %d: %s", sk.Line, sk.Reason)
		}
	}
	for i := range charms {
		charms[i].Skills = dropUnknownSkills(charms[i].Skills, c.Skills, trace, fmt.Sprintf("charm %q", charms[i].ID))
	}
	c = c.WithCharms(charms)

	skills := solver.Partition(req.RequiredSkills, table)
	sex := req.Sex
	if sex == "" {
		sex = domain.SexAll
	}

	uniquePools := solver.BuildUniquePools(c.ArmorsByPart, c.Charms, skills.NonDecoAble, sex)
	uniqueTuples := solver.PossibleUniqueTuples(uniquePools, skills.NonDecoAble, skills, c)
	trace.Notef("found %d possible-unique armor combinations", len(uniqueTuples))

	candidates := solver.ExpandAndDeduplicate(uniqueTuples, c.ArmorsByPart, c.Charms, skills.NonDecoAble, skills.DecoAble, sex)
	trace.Notef("expanded to %d deduplicated candidates", len(candidates))

	weaponSockets := domain.SocketVectorFromSizes(req.WeaponSlots[:])
	builds := solver.Solve(req.RequiredSkills, candidates, skills, table, c, weaponSockets, req.FreeSlots)
	trace.Notef("kept %d feasible builds, capped at %d", len(builds), solver.MaxAnswerLength)

	finalBuilds := solver.FinalizeBuilds(builds, req.RequiredSkills, table, c, weaponSockets, req.FreeSlots, sex)
	trace.Notef("expanded to %d concrete builds across decoration packings and slot-only substitutions", len(finalBuilds))

	answers := solver.Assemble(finalBuilds, c)

	return query.Response{
		CorrelationID: correlationID,
		Builds:        toAnswerViews(answers, c),
		Log:           trace.Lines(),
	}, nil
}

// dropUnknownSkills discards any skill id a per-query anomaly or charm
// row names that the static catalog doesn't recognize (spec.md section
// 7: malformed catalog input, discard with a log line, never abort).
func dropUnknownSkills(skills map[string]int, known map[string]domain.Skill, trace *obslog.Trace, source string) map[string]int {
	for id := range skills {
		if _, ok := known[id]; !ok {
			trace.Warnf("%s referenced unknown skill %q, dropped", source, id)
			delete(skills, id)
		}
	}
	return skills
}

func toAnswerViews(answers []solver.Answer, c *catalog.Catalog) []query.AnswerView {
	out := make([]query.AnswerView, len(answers))
	for i, a := range answers {
		parts := make(map[domain.ArmorPart]query.PartView, len(a.Parts))
		for part, p := range a.Parts {
			parts[part] = query.PartView{
				ID:         p.ID,
				Name:       displayName(p.Names),
				IsAnomaly:  p.IsAnomaly,
				OriginalID: p.OriginalID,
			}
		}
		decos := make([]query.DecorationView, len(a.Decorations))
		for j, d := range a.Decorations {
			decos[j] = query.DecorationView{
				SkillID:      d.SkillID,
				DecorationID: d.DecorationID,
				SlotSize:     d.SlotSize,
				Count:        d.Count,
			}
		}
		out[i] = query.AnswerView{Rank: i + 1, Parts: parts, Decorations: decos, Score: a.Score}
	}
	return out
}

func displayName(names map[string]string) string {
	if name, ok := names["en"]; ok {
		return name
	}
	for _, name := range names {
		return name
	}
	return ""
}
