package server

// EvaluateSession 胜负判定，纯函数，按固定顺序检查：
// 逃亡者全灭优先（此时不看猎人自己的血量），其次猎人与小怪双双阵亡
func EvaluateSession(s *Session) (winner, reason string, over bool) {
	aliveRunners := 0
	aliveHunter := false
	for _, p := range s.Players() {
		if p.HP <= 0 {
			continue
		}
		switch p.Role {
		case RoleRunner:
			aliveRunners++
		case RoleHunter:
			aliveHunter = true
		}
	}
	minionAlive := s.Minion != nil && s.Minion.HP > 0

	switch {
	case aliveRunners == 0:
		return "Hunter", "Runners Eliminated", true
	case !aliveHunter && !minionAlive:
		return "Runners", "Hunter & Minion Defeated", true
	default:
		return "", "", false
	}
}

// evaluateWin 每次影响血量的事件之后调用；没有终局闩锁时，
// 之后每个满足条件的事件都会再次广播 game-over（沿用的历史行为，
// 可用规则开关 LatchGameOver 收敛为只发一次）
func (g *Game) evaluateWin() {
	winner, reason, over := EvaluateSession(g.session)
	if !over {
		return
	}
	if g.rules.LatchGameOver {
		if g.ended {
			return
		}
		g.ended = true
	}
	g.gw.Broadcast(gameOverMessage{Type: "game-over", Winner: winner, Reason: reason})
}
