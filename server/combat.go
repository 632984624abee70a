package server

// handleHit 玩家受击结算：扣血并在 0 处裁剪，随后检查猎人吸血与终局
// 吸血条件是结算后血量等于 0 而不是刚刚降到 0——对已倒地目标的补刀
// 会再次触发回血，这是沿用的历史行为
func (g *Game) handleHit(ev HitEvent) {
	target, ok := g.session.Player(PlayerID(ev.TargetID))
	if !ok {
		return
	}
	target.HP -= ev.Damage
	if target.HP < 0 {
		target.HP = 0
	}
	if target.HP == 0 && ev.SourceID != "" {
		if src, ok := g.session.Player(PlayerID(ev.SourceID)); ok && src.Role == RoleHunter {
			src.HP += HunterHealAmount
			if src.HP > MaxPlayerHP {
				src.HP = MaxPlayerHP
			}
		}
	}
	g.gw.Broadcast(hitMessage{Type: "hit", TargetID: target.ID, HP: target.HP})
	g.evaluateWin()
}

// handleMinionHit 小怪受击：不裁剪下限，血量归零或为负即移除并判定终局
func (g *Game) handleMinionHit(damage float64) {
	m := g.session.Minion
	if m == nil {
		return
	}
	m.HP -= damage
	g.gw.Broadcast(minionHitMessage{Type: "minion-hit", HP: m.HP})
	if m.HP <= 0 {
		g.session.Minion = nil
		g.evaluateWin()
	}
}

// handlePickup 拾取武器：不校验武器名，直接覆盖并广播
func (g *Game) handlePickup(ev PickupEvent) {
	p, ok := g.session.Player(PlayerID(ev.ID))
	if !ok {
		return
	}
	p.Weapon = ev.Weapon
	g.gw.Broadcast(pickupMessage{Type: "pickup", ID: p.ID, Weapon: p.Weapon})
}
