package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrel-labs/wyrmforge/internal/domain"
)

func TestFinalizeBuilds_CrossesSlotOnlyPlaceholderWithConcretePieces(t *testing.T) {
	rawA := [domain.RawSlotCount]int{1, 0, 0}
	rawB := [domain.RawSlotCount]int{0, 1, 0} // same multiset as rawA, different order
	torsoA := domain.Equipment{ID: "torso_a", Part: domain.PartTorso, SexType: domain.SexAll, Raw: rawA, Slots: domain.SocketVectorFromSizes([]int{1})}
	torsoB := domain.Equipment{ID: "torso_b", Part: domain.PartTorso, SexType: domain.SexAll, Raw: rawB, Slots: domain.SocketVectorFromSizes([]int{1})}
	c := mustCatalog(t, []domain.Equipment{torsoA, torsoB}, nil, nil)
	table := Build(c)

	build := Build{
		ByPart: map[domain.ArmorPart]domain.Equipment{
			domain.PartHelm:     domain.NewEmpty(domain.PartHelm),
			domain.PartTorso:    domain.NewSlotOnly(domain.PartTorso, rawA),
			domain.PartArm:      domain.NewEmpty(domain.PartArm),
			domain.PartWaist:    domain.NewEmpty(domain.PartWaist),
			domain.PartFeet:     domain.NewEmpty(domain.PartFeet),
			domain.PartTalisman: domain.NewEmpty(domain.PartTalisman),
		},
		Score: 10,
	}

	final := FinalizeBuilds([]Build{build}, nil, table, c, domain.SocketVector{}, domain.SocketVector{}, domain.SexAll)

	require.Len(t, final, 2, "expected the slot-only placeholder to be crossed with both concrete torso pieces")
	ids := map[string]bool{}
	for _, b := range final {
		ids[b.ByPart[domain.PartTorso].ID] = true
	}
	assert.True(t, ids["torso_a"])
	assert.True(t, ids["torso_b"])
}

func TestFinalizeBuilds_EmitsEveryFittingPacking(t *testing.T) {
	c := mustCatalog(t, nil,
		[]domain.Skill{{ID: "crit_boost", MaxLevel: 4}},
		[]domain.Decoration{
			{ID: "small", SkillID: "crit_boost", SkillLevel: 1, SlotSize: 1},
			{ID: "big", SkillID: "crit_boost", SkillLevel: 2, SlotSize: 3},
		},
	)
	table := Build(c)

	build := Build{
		ByPart: map[domain.ArmorPart]domain.Equipment{
			domain.PartHelm:     domain.NewEmpty(domain.PartHelm),
			domain.PartTorso:    domain.NewEmpty(domain.PartTorso),
			domain.PartArm:      domain.NewEmpty(domain.PartArm),
			domain.PartWaist:    domain.NewEmpty(domain.PartWaist),
			domain.PartFeet:     domain.NewEmpty(domain.PartFeet),
			domain.PartTalisman: domain.NewEmpty(domain.PartTalisman),
		},
		Score: 5,
	}
	// Available sockets must admit both Pareto-minimal packings for
	// level 2: two small jewels ([2,0,0,0]) and one big jewel
	// ([0,0,1,0]).
	weaponSockets := domain.SocketVector{2, 0, 1, 0}

	final := FinalizeBuilds([]Build{build}, map[string]int{"crit_boost": 2}, table, c, weaponSockets, domain.SocketVector{}, domain.SexAll)

	require.Len(t, final, 2, "expected both Pareto-minimal packings to survive as distinct concrete builds")
	sums := map[domain.SocketVector]bool{}
	for _, b := range final {
		sums[b.Decos.Sum] = true
	}
	assert.True(t, sums[domain.SocketVector{2, 0, 0, 0}])
	assert.True(t, sums[domain.SocketVector{0, 0, 1, 0}])
}

func TestFinalizeBuilds_DropsEntryWhenFreeSlotsCannotBeReserved(t *testing.T) {
	c := mustCatalog(t, nil, nil, nil)
	table := Build(c)

	build := Build{ByPart: map[domain.ArmorPart]domain.Equipment{
		domain.PartHelm:     domain.NewEmpty(domain.PartHelm),
		domain.PartTorso:    domain.NewEmpty(domain.PartTorso),
		domain.PartArm:      domain.NewEmpty(domain.PartArm),
		domain.PartWaist:    domain.NewEmpty(domain.PartWaist),
		domain.PartFeet:     domain.NewEmpty(domain.PartFeet),
		domain.PartTalisman: domain.NewEmpty(domain.PartTalisman),
	}}

	final := FinalizeBuilds([]Build{build}, nil, table, c, domain.SocketVector{}, domain.SocketVector{0, 1, 0, 0}, domain.SexAll)
	assert.Empty(t, final, "expected an unreservable free-slot demand to drop the entry entirely")
}
