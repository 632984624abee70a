package server

// handleJoin 加入房间：已存在的同名条目被整体覆盖为默认值（重新加入即重置）
// 先广播花名册，再把完整快照单播给加入者本人
func (g *Game) handleJoin(id PlayerID) {
	g.session.PutPlayer(NewPlayer(id))
	g.gw.Broadcast(rosterMessage{Type: "player-join", Players: g.session.Roster()})
	g.gw.Send(id, sessionMessage{Type: "init", SessionSnapshot: g.session.Snapshot()})
}

// handleSelectChar 更新皮肤编号并广播完整玩家记录；未知玩家静默跳过
func (g *Game) handleSelectChar(id PlayerID, charIndex int) {
	p, ok := g.session.Player(id)
	if !ok {
		return
	}
	p.CharIndex = charIndex
	g.gw.Broadcast(playerUpdateMessage{Type: "player-update", Player: *p})
}

// handleMove 位置中继：无条件覆盖（服务端不做边界与速度校验），
// 广播给除来源连接外的所有人，避免自回声
func (g *Game) handleMove(from PlayerID, ev MoveEvent) {
	p, ok := g.session.Player(PlayerID(ev.ID))
	if !ok {
		return
	}
	p.X, p.Z, p.Rot = ev.X, ev.Z, ev.Rot
	g.gw.Broadcast(moveMessage{
		Type: "update",
		ID:   p.ID,
		Pos:  position{X: p.X, Z: p.Z},
		Rot:  p.Rot,
	}, from)
}

// handleStartGame 开局：按加入顺序均匀随机抽一名猎人，其余全部为逃亡者；
// 无论此前状态如何，血量与武器一律重置，小怪在原点重新生成
func (g *Game) handleStartGame() {
	n := g.session.Len()
	if n == 0 {
		return
	}
	hunter := g.session.PlayerAt(g.rand.Intn(n))
	for _, p := range g.session.Players() {
		if p.ID == hunter {
			p.Role = RoleHunter
		} else {
			p.Role = RoleRunner
		}
		p.HP = DefaultPlayerHP
		p.Weapon = DefaultWeapon
	}
	g.session.Minion = NewMinion()
	g.session.Started = true
	g.ended = false
	g.gw.Broadcast(sessionMessage{Type: "game-start", SessionSnapshot: g.session.Snapshot()})
}
