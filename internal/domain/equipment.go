package domain

import (
	"fmt"
	"sort"
)

// ArmorPart is one of the five body slots, plus the charm's own tag.
type ArmorPart string

const (
	PartHelm     ArmorPart = "helm"
	PartTorso    ArmorPart = "torso"
	PartArm      ArmorPart = "arm"
	PartWaist    ArmorPart = "waist"
	PartFeet     ArmorPart = "feet"
	PartTalisman ArmorPart = "talisman"
)

// BodyParts lists the five armor slots in helm-to-feet order,
// excluding the charm; candidate generation walks parts in this order.
var BodyParts = []ArmorPart{PartHelm, PartTorso, PartArm, PartWaist, PartFeet}

// SexType restricts which characters an armor piece fits.
type SexType string

const (
	SexAll    SexType = "all"
	SexMale   SexType = "male"
	SexFemale SexType = "female"
)

// Fits reports whether an armor piece usable by `owner` satisfies a
// character filtered to `want`.
func (owner SexType) Fits(want SexType) bool {
	return owner == SexAll || want == SexAll || owner == want
}

// Equipment is the single shape every piece of gear reduces to: a
// body-part armor, a charm, or one of the synthetic placeholders
// (empty, slot-only, anomaly-affected). Per the self-referential
// equipment abstraction called for in spec.md's design notes, this is
// a tagged struct rather than an interface with type-specific
// downcasts — armor and charm differ only in Part and a couple of
// metadata fields, so unifying them avoids ever needing an
// AsArmor/AsTalisman escape hatch.
type Equipment struct {
	ID      string
	Part    ArmorPart
	SexType SexType // meaningless (SexAll) for charms and synthetic pieces
	Rarity  int

	Skills map[string]int
	Slots  SocketVector
	Raw    [RawSlotCount]int // the pre-promotion socket sizes, for slot-only ids

	Names map[string]string

	IsEmpty    bool // placeholder standing for "any piece, including none"
	IsSlotOnly bool // placeholder for "any piece with this socket signature, no skills"
	IsAnomaly  bool
	OriginalID string // base armor id this anomaly piece was derived from
}

// SkillLevel returns the level Equipment grants of the given skill, or
// 0 if it doesn't provide that skill.
func (e Equipment) SkillLevel(skillID string) int {
	return e.Skills[skillID]
}

// EmptyID is the synthetic identifier for the "any piece, to be
// expanded later" placeholder of a body part.
func EmptyID(part ArmorPart) string {
	return "__empty_" + string(part)
}

// NewEmpty builds the empty placeholder for a body part.
func NewEmpty(part ArmorPart) Equipment {
	return Equipment{
		ID:      EmptyID(part),
		Part:    part,
		SexType: SexAll,
		Skills:  map[string]int{},
		IsEmpty: true,
	}
}

// SlotOnlyID canonicalizes a raw 3-slot signature into the synthetic
// id for "any piece with this exact socket signature and no skills".
// The signature is sorted ascending so that [2,1,0] and [1,2,0] collapse
// to the same equivalence class.
func SlotOnlyID(raw [RawSlotCount]int) string {
	sorted := raw
	sort.Ints(sorted[:])
	return "__slot_" + slotSignature(sorted)
}

// NewSlotOnly builds the slot-only placeholder for a body part and raw
// socket signature.
func NewSlotOnly(part ArmorPart, raw [RawSlotCount]int) Equipment {
	sorted := raw
	sort.Ints(sorted[:])
	return Equipment{
		ID:         SlotOnlyID(raw),
		Part:       part,
		SexType:    SexAll,
		Skills:     map[string]int{},
		Slots:      SocketVectorFromSizes(sorted[:]),
		Raw:        sorted,
		IsSlotOnly: true,
	}
}

// AnomalyID formats the synthetic id for the index-th anomaly row
// affecting baseID.
func AnomalyID(index int, baseID string) string {
	return fmt.Sprintf("__anomaly_%d_%s", index, baseID)
}

// CompositeID is the FULLEQUIP-<helm>-<torso>-<arm>-<waist>-<feet>-<charm>
// identifier used to deduplicate candidate 6-tuples (spec.md section 6).
func CompositeID(byPart map[ArmorPart]Equipment) string {
	return fmt.Sprintf(
		"FULLEQUIP-%s-%s-%s-%s-%s-%s",
		byPart[PartHelm].ID,
		byPart[PartTorso].ID,
		byPart[PartArm].ID,
		byPart[PartWaist].ID,
		byPart[PartFeet].ID,
		byPart[PartTalisman].ID,
	)
}
