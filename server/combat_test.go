package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startedGame 三人对局：随机序列 0 保证 p1 是猎人，p2/p3 是逃亡者
func startedGame(t *testing.T) (*Game, *fakeGateway) {
	t.Helper()
	g, gw := newTestGame(0)
	joinAll(g, "p1", "p2", "p3")
	g.HandleEvent("p1", StartGameEvent{})
	p1, _ := g.session.Player("p1")
	require.Equal(t, RoleHunter, p1.Role)
	gw.reset()
	return g, gw
}

func TestHitHPMonotonicAndClampedAtZero(t *testing.T) {
	g, gw := newTestGame()
	g.HandleEvent("p1", JoinEvent{})
	gw.reset()

	prev := 100.0
	for _, dmg := range []float64{30, 0, 45, 50, 10} {
		g.HandleEvent("p1", HitEvent{TargetID: "p1", Damage: dmg})
		p, _ := g.session.Player("p1")
		assert.LessOrEqual(t, p.HP, prev, "血量单调不增")
		assert.GreaterOrEqual(t, p.HP, 0.0, "血量不为负")
		prev = p.HP
	}
	p, _ := g.session.Player("p1")
	assert.Equal(t, 0.0, p.HP)
}

func TestHitBroadcastsResultingHP(t *testing.T) {
	g, gw := startedGame(t)

	g.HandleEvent("p1", HitEvent{TargetID: "p2", SourceID: "p1", Damage: 35})

	require.NotEmpty(t, gw.log)
	hit, ok := gw.log[0].msg.(hitMessage)
	require.True(t, ok)
	assert.Equal(t, hitMessage{Type: "hit", TargetID: "p2", HP: 65}, hit)
}

func TestHitUnknownTargetIgnored(t *testing.T) {
	g, gw := startedGame(t)
	g.HandleEvent("p1", HitEvent{TargetID: "ghost", SourceID: "p1", Damage: 35})
	assert.Empty(t, gw.log)
}

func TestHunterHealsOnKill(t *testing.T) {
	g, _ := startedGame(t)
	g.HandleEvent("p1", HitEvent{TargetID: "p2", Damage: 95})

	g.HandleEvent("p1", HitEvent{TargetID: "p2", SourceID: "p1", Damage: 5})

	p1, _ := g.session.Player("p1")
	p2, _ := g.session.Player("p2")
	assert.Equal(t, 0.0, p2.HP)
	assert.Equal(t, 120.0, p1.HP, "击杀回血 +20")
}

func TestHunterHealCappedAt150(t *testing.T) {
	g, _ := startedGame(t)
	p1, _ := g.session.Player("p1")
	p1.HP = 140

	g.HandleEvent("p1", HitEvent{TargetID: "p2", SourceID: "p1", Damage: 100})

	assert.Equal(t, 150.0, p1.HP)
}

// 对已倒地目标的补刀会再次回血：判定看的是结算后等于 0，
// 而不是刚刚降到 0，属于沿用的历史行为
func TestCorpseRehitRetriggersHeal(t *testing.T) {
	g, _ := startedGame(t)
	g.HandleEvent("p1", HitEvent{TargetID: "p2", SourceID: "p1", Damage: 100})
	p1, _ := g.session.Player("p1")
	require.Equal(t, 120.0, p1.HP)

	g.HandleEvent("p1", HitEvent{TargetID: "p2", SourceID: "p1", Damage: 10})

	assert.Equal(t, 140.0, p1.HP)
}

func TestNoHealWithoutSourceOrForRunnerSource(t *testing.T) {
	g, _ := startedGame(t)

	// 无来源击杀：不回血
	g.HandleEvent("p1", HitEvent{TargetID: "p2", Damage: 100})
	p1, _ := g.session.Player("p1")
	assert.Equal(t, 100.0, p1.HP)

	// 逃亡者补刀：同样不回血
	g.HandleEvent("p3", HitEvent{TargetID: "p2", SourceID: "p3", Damage: 10})
	p3, _ := g.session.Player("p3")
	assert.Equal(t, 100.0, p3.HP)
}

func TestMinionHitNoFloorClampAndRemoval(t *testing.T) {
	g, gw := startedGame(t)
	g.HandleEvent("p2", MinionHitEvent{Damage: 490})
	require.NotNil(t, g.session.Minion)
	assert.Equal(t, 10.0, g.session.Minion.HP)
	gw.reset()

	g.HandleEvent("p2", MinionHitEvent{Damage: 15})

	require.NotEmpty(t, gw.log)
	mh, ok := gw.log[0].msg.(minionHitMessage)
	require.True(t, ok)
	assert.Equal(t, -5.0, mh.HP, "移除前允许广播负血量")
	assert.Nil(t, g.session.Minion, "血量归零即移除")

	gw.reset()
	g.HandleEvent("p2", MinionHitEvent{Damage: 5})
	assert.Empty(t, gw.log, "没有小怪时静默跳过")
}

func TestPickupSetsWeaponUnvalidated(t *testing.T) {
	g, gw := startedGame(t)

	g.HandleEvent("p2", PickupEvent{ID: "p2", Weapon: "rusty-spoon"})

	p2, _ := g.session.Player("p2")
	assert.Equal(t, "rusty-spoon", p2.Weapon)
	require.Len(t, gw.log, 1)
	pk, ok := gw.log[0].msg.(pickupMessage)
	require.True(t, ok)
	assert.Equal(t, pickupMessage{Type: "pickup", ID: "p2", Weapon: "rusty-spoon"}, pk)

	gw.reset()
	g.HandleEvent("ghost", PickupEvent{ID: "ghost", Weapon: "axe"})
	assert.Empty(t, gw.log)
}
