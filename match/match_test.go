package match_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/duelcore/resolver/catalog"
	"github.com/duelcore/resolver/match"
	"github.com/duelcore/resolver/model"
)

func TestQueuePairsTwoPlayers(t *testing.T) {
	q := match.NewQueue()
	require.Nil(t, q.Enqueue("p1"), "a lone player waits")
	paired := q.Enqueue("p2")
	require.NotNil(t, paired)
	require.Equal(t, "p1", paired.SIDA)
	require.Equal(t, "p2", paired.SIDB)
	require.NotEmpty(t, paired.RoomID)
}

func TestQueueIgnoresDuplicateEnqueue(t *testing.T) {
	q := match.NewQueue()
	require.Nil(t, q.Enqueue("p1"))
	require.Nil(t, q.Enqueue("p1"), "re-queueing the same sid must not pair them with themselves")
	require.NotNil(t, q.Enqueue("p2"))
}

func TestPrepSubmitMergesPartialPicks(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	m := match.New(cat, match.Paired{RoomID: "r", SIDA: "p1", SIDB: "p2", Seed: 9})

	require.NoError(t, m.PrepSubmit("p1", model.PlayerBuild{ClassID: "rogue"}))
	require.NoError(t, m.PrepSubmit("p1", model.PlayerBuild{
		Items: map[model.Slot]string{model.SlotWeapon: "quick_blade"},
	}))

	pick := m.State.Picks["p1"]
	require.Equal(t, "rogue", pick.ClassID, "a later item-only submit must not clear the class")
	require.Equal(t, "quick_blade", pick.Items[model.SlotWeapon])
}

func TestPrepSubmitRejectsOutsiders(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	m := match.New(cat, match.Paired{RoomID: "r", SIDA: "p1", SIDB: "p2", Seed: 9})
	require.Error(t, m.PrepSubmit("p3", model.PlayerBuild{ClassID: "rogue"}))
}

func TestLockInRequiresClass(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	m := match.New(cat, match.Paired{RoomID: "r", SIDA: "p1", SIDB: "p2", Seed: 9})
	require.Error(t, m.LockIn("p1"), "lock-in without a class pick is rejected")
}

func TestLockInTransitionsToCombatOnceBothReady(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	m := match.New(cat, match.Paired{RoomID: "r", SIDA: "p1", SIDB: "p2", Seed: 9})

	require.NoError(t, m.PrepSubmit("p1", model.PlayerBuild{ClassID: "warrior"}))
	require.NoError(t, m.PrepSubmit("p2", model.PlayerBuild{ClassID: "mage"}))

	require.NoError(t, m.LockIn("p1"))
	require.Equal(t, model.PhasePrep, m.State.Phase, "one lock-in is not enough")

	require.NoError(t, m.LockIn("p2"))
	require.Equal(t, model.PhaseCombat, m.State.Phase)
	require.NotNil(t, m.State.State["p1"])
	require.NotNil(t, m.State.State["p2"])
}

func TestActionResolvesOnlyWhenBothSubmitted(t *testing.T) {
	m, _ := newDuel(t, 11, "warrior", "warrior")

	resolved, err := m.Action("p1", model.Intent{AbilityID: "basic_attack"})
	require.NoError(t, err)
	require.False(t, resolved)
	require.Equal(t, 0, m.State.Turn)

	resolved, err = m.Action("p2", model.Intent{AbilityID: "basic_attack"})
	require.NoError(t, err)
	require.True(t, resolved)
	require.Equal(t, 1, m.State.Turn)
}

func TestDisconnectForfeits(t *testing.T) {
	m, _ := newDuel(t, 12, "warrior", "warrior")
	m.Disconnect("p1")
	require.Equal(t, model.PhaseEnded, m.State.Phase)
	require.Equal(t, "p2", m.State.Winner)

	// A second disconnect on an ended match changes nothing.
	m.Disconnect("p2")
	require.Equal(t, "p2", m.State.Winner)
}

func TestSnapshotRespectsClassGatingAndHidesPassives(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	m := match.New(cat, match.Paired{RoomID: "r", SIDA: "p1", SIDB: "p2", Seed: 9})

	require.NoError(t, m.PrepSubmit("p1", model.PlayerBuild{
		ClassID: "rogue",
		Items: map[model.Slot]string{
			model.SlotWeapon:  "quick_blade",
			model.SlotTrinket: "arcane_bauble", // mage-only: must not appear
		},
	}))
	require.NoError(t, m.PrepSubmit("p2", model.PlayerBuild{ClassID: "mage"}))
	require.NoError(t, m.LockIn("p1"))
	require.NoError(t, m.LockIn("p2"))

	snap, err := m.Snapshot("p1", 10)
	require.NoError(t, err)

	require.Len(t, snap.EquippedItems, 1)
	require.Equal(t, "quick_blade", snap.EquippedItems[0].ID)
	for _, e := range snap.Effects {
		require.NotContains(t, e.ID, ":passive:", "item passives are engine state, not UI effects")
	}
	require.Equal(t, "energy", snap.PrimaryResource.Name)
}

func TestSnapshotBeforeCombatErrors(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	m := match.New(cat, match.Paired{RoomID: "r", SIDA: "p1", SIDB: "p2", Seed: 9})
	_, err = m.Snapshot("p1", 10)
	require.Error(t, err)
}

func TestSnapshotReportsCooldowns(t *testing.T) {
	m, _ := newDuel(t, 13, "mage", "warrior")

	act(t, m, "p1", "blink")
	act(t, m, "p2", "basic_attack")

	snap, err := m.Snapshot("p1", 5)
	require.NoError(t, err)
	require.Len(t, snap.Cooldowns, 1)
	require.Equal(t, "blink", snap.Cooldowns[0].AbilityID)
	require.Equal(t, []int{3}, snap.Cooldowns[0].Slots, "a 4-turn cooldown has 3 turns left after the end-of-turn tick")
	require.NotEmpty(t, snap.LogTail)
	require.LessOrEqual(t, len(snap.LogTail), 5)
}
