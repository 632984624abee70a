package server

import "math"

// MinionTick 小怪 AI 的单次推进，由房间以固定 50ms 周期驱动，
// 与客户端消息无关。前置条件不满足时静默跳过，不重试不报错
func (g *Game) MinionTick() {
	if g.session == nil || !g.session.Started || g.session.Minion == nil {
		return
	}
	m := g.session.Minion

	// 按加入顺序找最近的存活逃亡者；严格更近才换目标，平局保持先到者
	var target *Player
	var dist float64
	for _, p := range g.session.Players() {
		if p.Role != RoleRunner || p.HP <= 0 {
			continue
		}
		d := math.Hypot(p.X-m.X, p.Z-m.Z)
		if target == nil || d < dist {
			target, dist = p, d
		}
	}

	if target != nil {
		// 位移与接触判定都使用移动前的距离
		if dist > 0 {
			m.X += (target.X - m.X) / dist * g.rules.MinionSpeed
			m.Z += (target.Z - m.Z) / dist * g.rules.MinionSpeed
		}
		if dist < g.rules.MinionContactRange {
			target.HP -= g.rules.MinionContactDamage
			if target.HP < 0 {
				target.HP = 0
			}
			g.gw.Broadcast(hitMessage{Type: "hit", TargetID: target.ID, HP: target.HP})
			g.evaluateWin()
		}
	}

	g.gw.Broadcast(minionUpdateMessage{Type: "minion-update", X: m.X, Z: m.Z, HP: m.HP})
}
