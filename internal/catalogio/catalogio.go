// Package catalogio loads the static equipment catalog the solver
// searches from JSON files: armors, skills and decorations. Grounded
// on the teacher's CSV loader
// (vsinha-mrp/pkg/infrastructure/repositories/csv/csv_loader.go) for
// the overall open-read-decode-wrap-error shape, adapted to JSON
// because spec.md section 6 specifies a JSON feed for the static
// catalog (CSV is reserved for per-query anomaly and charm rows, see
// internal/queryio).
package catalogio

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kestrel-labs/wyrmforge/internal/domain"
)

type skillRow struct {
	ID       string            `json:"id"`
	MaxLevel int               `json:"max_level"`
	Names    map[string]string `json:"names"`
	Texts    map[string]string `json:"texts"`
}

type decorationRow struct {
	ID         string            `json:"id"`
	SkillID    string            `json:"skill_id"`
	SkillLevel int               `json:"skill_level"`
	SlotSize   int               `json:"slot_size"`
	Names      map[string]string `json:"names"`
}

// skillGrant is the nested shape spec.md section 6 specifies for an
// armor row's skill map: skill id -> {level}, not a bare integer.
type skillGrant struct {
	Level int `json:"level"`
}

type statBlock struct {
	Defense int `json:"defense"`
	Fire    int `json:"fire"`
	Water   int `json:"water"`
	Elec    int `json:"elec"`
	Ice     int `json:"ice"`
	Dragon  int `json:"dragon"`
}

type armorRow struct {
	ID      string                `json:"id"`
	Part    string                `json:"part"`
	SexType string                `json:"sex_type"`
	Rarity  int                   `json:"rarity"`
	Names   map[string]string     `json:"names"`
	Stat    statBlock             `json:"stat"`
	Skills  map[string]skillGrant `json:"skills"`
	Slots   [domain.RawSlotCount]int `json:"slots"`
}

// LoadSkills reads the skill table from a JSON file.
func LoadSkills(path string) ([]domain.Skill, error) {
	var rows []skillRow
	if err := readJSON(path, &rows); err != nil {
		return nil, fmt.Errorf("load skills: %w", err)
	}

	out := make([]domain.Skill, 0, len(rows))
	for _, r := range rows {
		if r.ID == "" || r.MaxLevel <= 0 {
			continue
		}
		out = append(out, domain.Skill{ID: r.ID, MaxLevel: r.MaxLevel, Names: r.Names, Texts: r.Texts})
	}
	return out, nil
}

// LoadDecorations reads the decoration table from a JSON file.
func LoadDecorations(path string) ([]domain.Decoration, error) {
	var rows []decorationRow
	if err := readJSON(path, &rows); err != nil {
		return nil, fmt.Errorf("load decorations: %w", err)
	}

	out := make([]domain.Decoration, 0, len(rows))
	for _, r := range rows {
		if r.ID == "" || r.SkillID == "" || r.SkillLevel <= 0 || r.SlotSize <= 0 || r.SlotSize > domain.MaxSlotLevel {
			continue
		}
		out = append(out, domain.Decoration{
			ID: r.ID, SkillID: r.SkillID, SkillLevel: r.SkillLevel, SlotSize: r.SlotSize, Names: r.Names,
		})
	}
	return out, nil
}

// LoadArmors reads the armor table from a JSON file, discarding any
// row with an unrecognized body part or out-of-range slot size rather
// than failing the whole load (spec.md section 7: a malformed row is
// dropped and logged by the caller, not a fatal error).
func LoadArmors(path string) ([]domain.Equipment, []int, error) {
	var rows []armorRow
	if err := readJSON(path, &rows); err != nil {
		return nil, nil, fmt.Errorf("load armors: %w", err)
	}

	out := make([]domain.Equipment, 0, len(rows))
	var skippedRows []int
	for i, r := range rows {
		part, ok := parsePart(r.Part)
		if !ok {
			skippedRows = append(skippedRows, i)
			continue
		}
		if !validSlots(r.Slots) {
			skippedRows = append(skippedRows, i)
			continue
		}
		out = append(out, domain.NewArmor(domain.ArmorInput{
			ID:      r.ID,
			Part:    part,
			SexType: parseSex(r.SexType),
			Names:   r.Names,
			Rarity:  r.Rarity,
			Skills:  flattenSkills(r.Skills),
			Slots:   r.Slots,
		}))
	}
	return out, skippedRows, nil
}

func flattenSkills(in map[string]skillGrant) map[string]int {
	out := make(map[string]int, len(in))
	for id, g := range in {
		out[id] = g.Level
	}
	return out
}

func readJSON(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(v)
}

func validSlots(slots [domain.RawSlotCount]int) bool {
	for _, s := range slots {
		if s < 0 || s > domain.MaxSlotLevel {
			return false
		}
	}
	return true
}

func parsePart(s string) (domain.ArmorPart, bool) {
	switch domain.ArmorPart(s) {
	case domain.PartHelm, domain.PartTorso, domain.PartArm, domain.PartWaist, domain.PartFeet:
		return domain.ArmorPart(s), true
	default:
		return "", false
	}
}

func parseSex(s string) domain.SexType {
	switch domain.SexType(s) {
	case domain.SexMale, domain.SexFemale:
		return domain.SexType(s)
	default:
		return domain.SexAll
	}
}
