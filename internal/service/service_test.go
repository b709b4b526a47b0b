package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrel-labs/wyrmforge/internal/catalog"
	"github.com/kestrel-labs/wyrmforge/internal/domain"
	"github.com/kestrel-labs/wyrmforge/internal/query"
	"github.com/kestrel-labs/wyrmforge/internal/service"
)

func mustCatalog(t *testing.T, armors []domain.Equipment, skills []domain.Skill, decos []domain.Decoration) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(armors, skills, decos)
	require.NoError(t, err)
	return c
}

// S1: single-decoration skill, satisfied purely out of the weapon's
// own sockets against an otherwise empty armor catalog.
func TestSolve_SingleDecoSkillSatisfiedByWeaponSockets(t *testing.T) {
	c := mustCatalog(t, nil,
		[]domain.Skill{{ID: "stamina_surge", MaxLevel: 3}},
		[]domain.Decoration{{ID: "stamina_jewel", SkillID: "stamina_surge", SkillLevel: 1, SlotSize: 2}},
	)
	svc := service.New(c)

	resp, err := svc.Solve(query.Request{
		RequiredSkills: map[string]int{"stamina_surge": 2},
		WeaponSlots:    [domain.RawSlotCount]int{2, 2, 0},
		FreeSlots:      domain.SocketVector{0, 0, 0, 0},
	})

	require.NoError(t, err)
	require.Len(t, resp.Builds, 1)
	require.NotEmpty(t, resp.Builds[0].Decorations, "expected the weapon's own sockets to carry the decoration packing")
	assert.NotEmpty(t, resp.CorrelationID)
}

// S2: a skill with no decoration, satisfied purely by equipping an
// armor piece that already grants it at the required level.
func TestSolve_NoDecoSkillSatisfiedByArmorAlone(t *testing.T) {
	helm := domain.NewArmor(domain.ArmorInput{
		ID: "helm_a", Part: domain.PartHelm, SexType: domain.SexAll,
		Names:  map[string]string{"en": "Dragon Helm"},
		Skills: map[string]int{"critical_exploit": 3},
	})
	c := mustCatalog(t, []domain.Equipment{helm}, []domain.Skill{{ID: "critical_exploit", MaxLevel: 3}}, nil)
	svc := service.New(c)

	resp, err := svc.Solve(query.Request{
		RequiredSkills: map[string]int{"critical_exploit": 3},
	})

	require.NoError(t, err)
	require.Len(t, resp.Builds, 1)
	part, ok := resp.Builds[0].Parts[domain.PartHelm]
	require.True(t, ok, "expected the granting helm to appear in the build")
	assert.Equal(t, "helm_a", part.ID)
	assert.Empty(t, resp.Builds[0].Decorations, "expected no decoration packing to be needed")
}

// S6: a required skill absent from the catalog yields an empty build
// list, never an error.
func TestSolve_UnknownRequiredSkillYieldsEmptyBuildsNoError(t *testing.T) {
	c := mustCatalog(t, nil, nil, nil)
	svc := service.New(c)

	resp, err := svc.Solve(query.Request{
		RequiredSkills: map[string]int{"does_not_exist": 1},
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Builds)
}

func TestSolve_RejectsInvalidRequest(t *testing.T) {
	c := mustCatalog(t, nil, nil, nil)
	svc := service.New(c)

	_, err := svc.Solve(query.Request{})
	assert.Error(t, err, "expected validation to reject an empty required-skills map")
}

func TestReload_SwapsCatalogSoSubsequentSolvesSeeIt(t *testing.T) {
	svc := service.New(mustCatalog(t, nil, nil, nil))

	_, err := svc.Solve(query.Request{RequiredSkills: map[string]int{"critical_exploit": 3}})
	require.NoError(t, err)

	helm := domain.NewArmor(domain.ArmorInput{
		ID: "helm_a", Part: domain.PartHelm, SexType: domain.SexAll,
		Names:  map[string]string{"en": "Dragon Helm"},
		Skills: map[string]int{"critical_exploit": 3},
	})
	svc.Reload(mustCatalog(t, []domain.Equipment{helm}, []domain.Skill{{ID: "critical_exploit", MaxLevel: 3}}, nil))

	resp, err := svc.Solve(query.Request{RequiredSkills: map[string]int{"critical_exploit": 3}})
	require.NoError(t, err)
	assert.Len(t, resp.Builds, 1, "expected the reloaded catalog's armor to now be found")
}
