package catalog_test

import (
	"testing"

	"github.com/kestrel-labs/wyrmforge/internal/catalog"
	"github.com/kestrel-labs/wyrmforge/internal/domain"
)

func TestNew_RejectsDecorationForUnknownSkill(t *testing.T) {
	_, err := catalog.New(nil, nil, []domain.Decoration{
		{ID: "mystery_jewel", SkillID: "nonexistent", SkillLevel: 1, SlotSize: 1},
	})
	if err == nil {
		t.Fatalf("expected an error for a decoration naming an unknown skill")
	}
}

func TestNew_DecosBySkillSortedAscendingBySlotSize(t *testing.T) {
	c, err := catalog.New(nil,
		[]domain.Skill{{ID: "stamina_surge", MaxLevel: 3}},
		[]domain.Decoration{
			{ID: "big", SkillID: "stamina_surge", SkillLevel: 1, SlotSize: 3},
			{ID: "small", SkillID: "stamina_surge", SkillLevel: 1, SlotSize: 1},
		},
	)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}

	decos := c.DecosBySkill["stamina_surge"]
	if len(decos) != 2 || decos[0].ID != "small" || decos[1].ID != "big" {
		t.Fatalf("expected ascending slot-size order, got %v", decos)
	}
}

func TestApplyAnomalies_SkipsUnknownBaseArmor(t *testing.T) {
	c, err := catalog.New(nil, nil, nil)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}

	next, skipped, flagged := c.ApplyAnomalies([]domain.AnomalyDiff{
		{BaseArmorDisplayName: "does-not-exist"},
	}, 0)

	if len(skipped) != 1 {
		t.Fatalf("expected the unknown base armor to be skipped, got %v", skipped)
	}
	if len(flagged) != 0 {
		t.Fatalf("expected no rarity flags for a skipped row, got %v", flagged)
	}
	if next == c {
		t.Fatalf("expected ApplyAnomalies to return a distinct catalog value")
	}
}

func TestApplyAnomalies_AppendsAffectedPiece(t *testing.T) {
	base := domain.NewArmor(domain.ArmorInput{
		ID: "helm_base", Part: domain.PartHelm, SexType: domain.SexAll,
		Names:  map[string]string{"en": "Iron Helm"},
		Skills: map[string]int{"guard_up": 1},
		Slots:  [domain.RawSlotCount]int{1, 0, 0},
	})
	c, err := catalog.New([]domain.Equipment{base}, []domain.Skill{{ID: "guard_up", MaxLevel: 3}}, nil)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}

	next, skipped, flagged := c.ApplyAnomalies([]domain.AnomalyDiff{
		{BaseArmorDisplayName: "Iron Helm", SlotSizes: [domain.RawSlotCount]int{2, 0, 0}},
	}, 0)

	if len(skipped) != 0 {
		t.Fatalf("expected no skipped rows, got %v", skipped)
	}
	if len(flagged) != 0 {
		t.Fatalf("expected no rarity flags when the base armor meets the floor, got %v", flagged)
	}
	if len(next.ArmorsByPart[domain.PartHelm]) != 2 {
		t.Fatalf("expected the original plus the affected piece, got %d", len(next.ArmorsByPart[domain.PartHelm]))
	}
	if len(c.ArmorsByPart[domain.PartHelm]) != 1 {
		t.Fatalf("expected ApplyAnomalies not to mutate the original catalog")
	}
}

func TestApplyAnomalies_FlagsBelowFloorBaseArmorButStillApplies(t *testing.T) {
	base := domain.NewArmor(domain.ArmorInput{
		ID: "helm_base", Part: domain.PartHelm, SexType: domain.SexAll,
		Names:  map[string]string{"en": "Worn Helm"},
		Rarity: 3,
		Slots:  [domain.RawSlotCount]int{0, 0, 0},
	})
	c, err := catalog.New([]domain.Equipment{base}, nil, nil)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}

	next, skipped, flagged := c.ApplyAnomalies([]domain.AnomalyDiff{
		{BaseArmorDisplayName: "Worn Helm", SlotSizes: [domain.RawSlotCount]int{1, 0, 0}},
	}, 7)

	if len(skipped) != 0 {
		t.Fatalf("expected no skipped rows, got %v", skipped)
	}
	if len(flagged) != 1 || flagged[0].Rarity != 3 || flagged[0].RarityFloor != 7 {
		t.Fatalf("expected one rarity flag for the below-floor base armor, got %v", flagged)
	}
	if len(next.ArmorsByPart[domain.PartHelm]) != 2 {
		t.Fatalf("expected the diff to still be applied despite the rarity flag, got %d", len(next.ArmorsByPart[domain.PartHelm]))
	}
}
