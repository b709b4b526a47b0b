package queryio_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kestrel-labs/wyrmforge/internal/queryio"
)

const anomalyHeaderRow = "armor_display_name,defense_diff,fire_diff,water_diff,elec_diff,ice_diff,dragon_diff,slot1,slot2,slot3"

func TestLoadAnomalyDiffs_DiscardsBadRowButKeepsGoodOnes(t *testing.T) {
	csv := anomalyHeaderRow + ",skill_name1,skill_level1\n" +
		"Iron Helm,0,0,0,0,0,0,2,0,0,guard_up,1\n" +
		"Bad Row,0,0,0,0,0,0,not-a-number,0,0,,\n"

	diffs, skipped, err := queryio.LoadAnomalyDiffs(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, diffs, 1)
	require.Len(t, skipped, 1)
	require.Equal(t, "Iron Helm", diffs[0].BaseArmorDisplayName)
	require.Equal(t, 1, diffs[0].SkillDiffs["guard_up"])
}

func TestLoadAnomalyDiffs_IgnoresStatDiffsButKeepsSocketAndSkillDiffs(t *testing.T) {
	csv := anomalyHeaderRow + "\n" +
		"Iron Helm,5,3,3,3,3,3,2,2,0\n"

	diffs, skipped, err := queryio.LoadAnomalyDiffs(strings.NewReader(csv))
	require.NoError(t, err)
	require.Empty(t, skipped)
	require.Len(t, diffs, 1)
	require.Equal(t, [3]int{2, 2, 0}, diffs[0].SlotSizes)
	require.Empty(t, diffs[0].SkillDiffs)
}

func TestLoadAnomalyDiffs_AcceptsMultipleTrailingSkillPairs(t *testing.T) {
	csv := anomalyHeaderRow + ",skill_name1,skill_level1,skill_name2,skill_level2\n" +
		"Iron Helm,0,0,0,0,0,0,0,0,0,guard_up,2,stamina_surge,-1\n"

	diffs, skipped, err := queryio.LoadAnomalyDiffs(strings.NewReader(csv))
	require.NoError(t, err)
	require.Empty(t, skipped)
	require.Len(t, diffs, 1)
	require.Equal(t, 2, diffs[0].SkillDiffs["guard_up"])
	require.Equal(t, -1, diffs[0].SkillDiffs["stamina_surge"])
}

func TestLoadAnomalyDiffs_RejectsWrongHeader(t *testing.T) {
	_, _, err := queryio.LoadAnomalyDiffs(strings.NewReader("wrong,header\nx,y\n"))
	require.Error(t, err)
}

func TestLoadCharms_ParsesTwoSkillsAndSlots(t *testing.T) {
	csv := "skill_name1,skill_level1,skill_name2,skill_level2,slot1,slot2,slot3\n" +
		"critical_exploit,2,stamina_surge,1,1,0,0\n"

	charms, skipped, err := queryio.LoadCharms(strings.NewReader(csv))
	require.NoError(t, err)
	require.Empty(t, skipped)
	require.Len(t, charms, 1)
	require.Equal(t, 2, charms[0].SkillLevel("critical_exploit"))
	require.Equal(t, 1, charms[0].SkillLevel("stamina_surge"))
}

func TestLoadCharms_EmptySkillNameMeansThatSlotIsAbsent(t *testing.T) {
	csv := "skill_name1,skill_level1,skill_name2,skill_level2,slot1,slot2,slot3\n" +
		"critical_exploit,2,,,1,0,0\n"

	charms, skipped, err := queryio.LoadCharms(strings.NewReader(csv))
	require.NoError(t, err)
	require.Empty(t, skipped)
	require.Len(t, charms, 1)
	require.Equal(t, 1, len(charms[0].Skills))
}
