// Package queryio loads the two CSV inputs that ride along with a
// single solve query rather than the static catalog: anomaly-crafting
// diffs and charms (spec.md section 6). Grounded directly on the
// teacher's CSV loader
// (vsinha-mrp/pkg/infrastructure/repositories/csv/csv_loader.go): open,
// read all records, validate the header, parse row by row. Departs
// from the teacher on malformed rows: the teacher fails the whole load
// on the first bad row, but spec.md section 7 calls for discarding a
// bad row and continuing, since a single typo in a CSV a player hand-
// edits shouldn't block the rest of their query.
package queryio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/kestrel-labs/wyrmforge/internal/domain"
)

// SkippedRow records a CSV row discarded during ingestion, for the
// trace log (internal/obslog) to report back to the caller.
type SkippedRow struct {
	Line   int
	Reason string
}

// anomalyFixedColumns is the leading run of every anomaly row before
// the repeating (skillName, skillLevel) pairs: display name, six
// stat/elemental diffs, three raw slot sizes (spec.md section 6). The
// stat and elemental diffs are parsed for header/column-count
// validation but never carried into domain.AnomalyDiff since only
// socket and skill diffs affect the search.
var anomalyFixedColumns = []string{
	"armor_display_name",
	"defense_diff", "fire_diff", "water_diff", "elec_diff", "ice_diff", "dragon_diff",
	"slot1", "slot2", "slot3",
}

const (
	anomalyNameCol  = 0
	anomalySlotsCol = 7
)

// LoadAnomalyDiffs parses anomaly-crafting rows. Each row names a base
// armor by display name, its stat/elemental diffs (ignored by the
// search), its three raw slot sizes, and zero or more trailing
// (skillName, skillLevel) pairs; multiple rows against the same base
// armor accumulate into separate AnomalyDiff values rather than being
// merged, mirroring how the game lets one piece receive several
// independent augments logged as separate crafting steps.
func LoadAnomalyDiffs(r io.Reader) ([]domain.AnomalyDiff, []SkippedRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read anomaly csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, nil
	}
	if !validateAnomalyHeader(records[0]) {
		return nil, nil, fmt.Errorf("anomaly csv header mismatch: expected %v(, skillName_i, skillLevel_i)*, got %v", anomalyFixedColumns, records[0])
	}

	var diffs []domain.AnomalyDiff
	var skipped []SkippedRow
	for i, row := range records[1:] {
		line := i + 2
		diff, err := parseAnomalyRow(row)
		if err != nil {
			skipped = append(skipped, SkippedRow{Line: line, Reason: err.Error()})
			continue
		}
		diffs = append(diffs, diff)
	}
	return diffs, skipped, nil
}

func validateAnomalyHeader(got []string) bool {
	if len(got) < len(anomalyFixedColumns) {
		return false
	}
	if (len(got)-len(anomalyFixedColumns))%2 != 0 {
		return false
	}
	for i, want := range anomalyFixedColumns {
		if got[i] != want {
			return false
		}
	}
	return true
}

func parseAnomalyRow(row []string) (domain.AnomalyDiff, error) {
	if len(row) < len(anomalyFixedColumns) {
		return domain.AnomalyDiff{}, fmt.Errorf("expected at least %d columns, got %d", len(anomalyFixedColumns), len(row))
	}
	if (len(row)-len(anomalyFixedColumns))%2 != 0 {
		return domain.AnomalyDiff{}, fmt.Errorf("trailing skill columns must come in (name, level) pairs, got %d", len(row)-len(anomalyFixedColumns))
	}

	var slots [domain.RawSlotCount]int
	for i := 0; i < domain.RawSlotCount; i++ {
		v, err := strconv.Atoi(row[anomalySlotsCol+i])
		if err != nil {
			return domain.AnomalyDiff{}, fmt.Errorf("slot%d: %w", i+1, err)
		}
		slots[i] = v
	}

	diff := domain.AnomalyDiff{
		BaseArmorDisplayName: row[anomalyNameCol],
		SlotSizes:            slots,
		SkillDiffs:           map[string]int{},
	}
	for i := len(anomalyFixedColumns); i+1 < len(row); i += 2 {
		skillID, levelField := row[i], row[i+1]
		if skillID == "" {
			continue
		}
		delta, err := strconv.Atoi(levelField)
		if err != nil {
			return domain.AnomalyDiff{}, fmt.Errorf("skill level for %q: %w", skillID, err)
		}
		diff.SkillDiffs[skillID] = delta
	}
	return diff, nil
}

// charmHeader mirrors spec.md section 6's literal charm row shape: two
// (skill name, skill level) pairs followed by three raw slot sizes. A
// charm CSV carries no id column of its own, so rows are assigned a
// synthetic id by their 1-based position in the file.
var charmHeader = []string{"skill_name1", "skill_level1", "skill_name2", "skill_level2", "slot1", "slot2", "slot3"}

// LoadCharms parses per-query charm rows. A charm has up to two skills
// (either pair may be blank) and its own raw socket vector.
func LoadCharms(r io.Reader) ([]domain.Equipment, []SkippedRow, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read charms csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, nil
	}
	if !validateHeader(records[0], charmHeader) {
		return nil, nil, fmt.Errorf("charms csv header mismatch: expected %v, got %v", charmHeader, records[0])
	}

	var charms []domain.Equipment
	var skipped []SkippedRow
	for i, row := range records[1:] {
		line := i + 2
		charm, err := parseCharmRow(row, line)
		if err != nil {
			skipped = append(skipped, SkippedRow{Line: line, Reason: err.Error()})
			continue
		}
		charms = append(charms, charm)
	}
	return charms, skipped, nil
}

func parseCharmRow(row []string, line int) (domain.Equipment, error) {
	if len(row) != len(charmHeader) {
		return domain.Equipment{}, fmt.Errorf("expected %d columns, got %d", len(charmHeader), len(row))
	}

	var in domain.CharmInput
	if row[0] != "" {
		lvl, err := strconv.Atoi(row[1])
		if err != nil {
			return domain.Equipment{}, fmt.Errorf("skill_level1: %w", err)
		}
		in.Skills[0] = domain.CharmSkill{SkillID: row[0], Level: lvl}
	}
	if row[2] != "" {
		lvl, err := strconv.Atoi(row[3])
		if err != nil {
			return domain.Equipment{}, fmt.Errorf("skill_level2: %w", err)
		}
		in.Skills[1] = domain.CharmSkill{SkillID: row[2], Level: lvl}
	}
	for i := 0; i < domain.RawSlotCount; i++ {
		v, err := strconv.Atoi(row[4+i])
		if err != nil {
			return domain.Equipment{}, fmt.Errorf("slot%d: %w", i+1, err)
		}
		in.Slots[i] = v
	}

	return domain.NewCharm(fmt.Sprintf("charm_row_%d", line), in), nil
}

func validateHeader(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
