package domain

// ArmorInput is the shape an armor catalog row is parsed into before
// becoming an Equipment value. It exists so internal/catalogio can
// stay a thin JSON-to-struct mapper while all domain invariants
// (slot conversion, skill-map assembly) live here.
type ArmorInput struct {
	ID      string
	Part    ArmorPart
	SexType SexType
	Names   map[string]string
	Rarity  int
	Skills  map[string]int // skill id -> level
	Slots   [RawSlotCount]int
}

// NewArmor converts a catalog row into a first-class Equipment piece.
func NewArmor(in ArmorInput) Equipment {
	skills := make(map[string]int, len(in.Skills))
	for id, lvl := range in.Skills {
		skills[id] = lvl
	}
	return Equipment{
		ID:      in.ID,
		Part:    in.Part,
		SexType: in.SexType,
		Rarity:  in.Rarity,
		Skills:  skills,
		Slots:   SocketVectorFromSizes(in.Slots[:]),
		Raw:     in.Slots,
		Names:   in.Names,
	}
}

// AnomalyDiff is a per-query anomaly-crafting row: a base armor
// (looked up by display name) plus the slot and skill changes the
// crafting applied. Defense/elemental-resistance diffs are accepted by
// the CSV ingestion contract (spec.md section 6) but never reach this
// type because they don't affect the search.
type AnomalyDiff struct {
	BaseArmorDisplayName string
	SlotSizes            [RawSlotCount]int // upgraded/unlocked raw slot sizes, 0 = unchanged
	SkillDiffs           map[string]int    // skill id -> level delta, may be negative
}

// ApplyAnomaly materializes the affected piece a base armor plus an
// anomaly diff produces. Per the design notes, the pair (original,
// diff) is collapsed into one first-class Equipment value immediately;
// nothing downstream ever needs to re-walk a pointer back to the base
// armor except to cite OriginalID in the response.
//
// A slot diff entry is treated as an upgrade floor, not a delta: MHR's
// anomaly crafting either increases an existing socket's size or
// unlocks a previously-empty one, and in both cases what the CSV row
// records is the resulting size, not an increment. A socket can only
// grow, never shrink, through this path.
func ApplyAnomaly(index int, base Equipment, diff AnomalyDiff) Equipment {
	affected := base
	affected.ID = AnomalyID(index, base.ID)
	affected.IsAnomaly = true
	affected.OriginalID = base.ID

	raw := base.Raw
	for i, size := range diff.SlotSizes {
		if size > raw[i] {
			raw[i] = size
		}
	}
	affected.Raw = raw
	affected.Slots = SocketVectorFromSizes(raw[:])

	skills := make(map[string]int, len(base.Skills)+len(diff.SkillDiffs))
	for id, lvl := range base.Skills {
		skills[id] = lvl
	}
	for id, delta := range diff.SkillDiffs {
		next := skills[id] + delta
		if next <= 0 {
			delete(skills, id)
			continue
		}
		skills[id] = next
	}
	affected.Skills = skills

	return affected
}

// CharmInput is a per-query charm row: up to two (skill, level) pairs
// plus its own socket vector (spec.md section 3, "Charm").
type CharmInput struct {
	Skills [2]CharmSkill // zero-value (empty ID) entries are absent
	Slots  [RawSlotCount]int
}

// CharmSkill is one (skill id, level) pair on a charm.
type CharmSkill struct {
	SkillID string
	Level   int
}

// NewCharm converts a charm row into a first-class Equipment piece
// tagged with the distinct PartTalisman, identical to armor for every
// search purpose thereafter.
func NewCharm(id string, in CharmInput) Equipment {
	skills := make(map[string]int, 2)
	for _, s := range in.Skills {
		if s.SkillID == "" {
			continue
		}
		skills[s.SkillID] = s.Level
	}
	return Equipment{
		ID:      id,
		Part:    PartTalisman,
		SexType: SexAll,
		Skills:  skills,
		Slots:   SocketVectorFromSizes(in.Slots[:]),
		Raw:     in.Slots,
	}
}
