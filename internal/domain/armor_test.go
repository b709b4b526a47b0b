package domain_test

import (
	"testing"

	"github.com/kestrel-labs/wyrmforge/internal/domain"
)

func TestApplyAnomaly_SlotDiffIsAnUpgradeFloorNotAnAddend(t *testing.T) {
	base := domain.NewArmor(domain.ArmorInput{
		ID: "helm_base", Part: domain.PartHelm,
		Slots: [domain.RawSlotCount]int{2, 0, 0},
	})

	affected := domain.ApplyAnomaly(0, base, domain.AnomalyDiff{
		SlotSizes: [domain.RawSlotCount]int{1, 3, 0},
	})

	if affected.Raw[0] != 2 {
		t.Fatalf("expected a lower diff value to leave the existing slot untouched, got %d", affected.Raw[0])
	}
	if affected.Raw[1] != 3 {
		t.Fatalf("expected the diff to unlock a previously-empty slot at size 3, got %d", affected.Raw[1])
	}
}

func TestApplyAnomaly_NegativeSkillDiffCanRemoveASkill(t *testing.T) {
	base := domain.NewArmor(domain.ArmorInput{
		ID: "helm_base", Part: domain.PartHelm,
		Skills: map[string]int{"guard_up": 1},
	})

	affected := domain.ApplyAnomaly(0, base, domain.AnomalyDiff{
		SkillDiffs: map[string]int{"guard_up": -1},
	})

	if affected.SkillLevel("guard_up") != 0 {
		t.Fatalf("expected the skill to be fully removed, got level %d", affected.SkillLevel("guard_up"))
	}
	if base.SkillLevel("guard_up") != 1 {
		t.Fatalf("expected the base armor to be unaffected")
	}
}

func TestNewCharm_SecondSkillSlotOptional(t *testing.T) {
	charm := domain.NewCharm("charm_a", domain.CharmInput{
		Skills: [2]domain.CharmSkill{{SkillID: "critical_exploit", Level: 2}},
	})

	if charm.Part != domain.PartTalisman {
		t.Fatalf("expected a charm to be tagged PartTalisman, got %s", charm.Part)
	}
	if len(charm.Skills) != 1 {
		t.Fatalf("expected only the populated skill slot to be recorded, got %v", charm.Skills)
	}
}
