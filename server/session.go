package server

import "time"

// PlayerID 玩家唯一标识，服务端在连接建立时生成（会话内不重复）
type PlayerID string

// Role 阵营角色：一名猎人对多名逃亡者
type Role string

const (
	RoleHunter Role = "hunter"
	RoleRunner Role = "runner"
)

const (
	// DefaultPlayerHP 玩家初始与重置血量
	DefaultPlayerHP = 100
	// MaxPlayerHP 血量软上限，仅猎人击杀回血可以超过 100 达到
	MaxPlayerHP = 150
	// HunterHealAmount 猎人击杀逃亡者的回血量
	HunterHealAmount = 20
	// DefaultMinionHP 小怪出生血量
	DefaultMinionHP = 500
	// DefaultWeapon 未拾取任何武器时的占位标记
	DefaultWeapon = "none"
)

// Player 房间内的玩家实体（服务端权威状态）
// 血量用浮点表示：小怪的接触伤害是每 Tick 0.5，整数存不下
type Player struct {
	ID        PlayerID `json:"id"`
	X         float64  `json:"x"`
	Z         float64  `json:"z"`
	Rot       float64  `json:"rot"`
	Role      Role     `json:"role"`
	HP        float64  `json:"hp"`
	Weapon    string   `json:"weapon"`
	CharIndex int      `json:"charIndex"`
}

// NewPlayer 以默认值创建玩家：逃亡者、满血、无武器、原点朝向零
func NewPlayer(id PlayerID) *Player {
	return &Player{
		ID:     id,
		Role:   RoleRunner,
		HP:     DefaultPlayerHP,
		Weapon: DefaultWeapon,
	}
}

// Minion 猎人阵营的 AI 小怪；指针非空即存活，置空即判定被消灭
// 血量不做下限裁剪，移除前允许短暂为负
type Minion struct {
	X  float64 `json:"x"`
	Z  float64 `json:"z"`
	HP float64 `json:"hp"`
}

// NewMinion 在原点生成满血小怪
func NewMinion() *Minion {
	return &Minion{HP: DefaultMinionHP}
}

// Session 单房间的权威对局状态，只允许房间的持有者串行读写
type Session struct {
	players map[PlayerID]*Player
	// order 记录加入顺序：猎人抽取与小怪索敌都按它遍历，保证结果确定
	order []PlayerID

	Minion  *Minion
	Started bool
	// CreatedAt 预留字段：创建时写入，规则当前不读取
	CreatedAt time.Time
}

// NewSession 创建空会话（首个入站事件触发，存活到房间销毁）
func NewSession() *Session {
	return &Session{
		players:   make(map[PlayerID]*Player),
		CreatedAt: time.Now(),
	}
}

// Player 按标识查找玩家
func (s *Session) Player(id PlayerID) (*Player, bool) {
	p, ok := s.players[id]
	return p, ok
}

// PutPlayer 写入或整体覆盖玩家条目；重复加入保留原有顺位
func (s *Session) PutPlayer(p *Player) {
	if _, ok := s.players[p.ID]; !ok {
		s.order = append(s.order, p.ID)
	}
	s.players[p.ID] = p
}

// Players 按加入顺序返回全部玩家（含离线遗留条目）
func (s *Session) Players() []*Player {
	out := make([]*Player, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.players[id])
	}
	return out
}

// Len 当前花名册条目数
func (s *Session) Len() int {
	return len(s.order)
}

// PlayerAt 按加入顺序取第 i 名玩家的标识，用于猎人随机抽取
func (s *Session) PlayerAt(i int) PlayerID {
	return s.order[i]
}

// RosterEntry player-join 广播里的花名册条目
type RosterEntry struct {
	ID        PlayerID `json:"id"`
	CharIndex int      `json:"charIndex"`
	HP        float64  `json:"hp"`
	Role      Role     `json:"role"`
}

// Roster 构造按加入顺序排列的花名册
func (s *Session) Roster() []RosterEntry {
	out := make([]RosterEntry, 0, len(s.order))
	for _, id := range s.order {
		p := s.players[id]
		out = append(out, RosterEntry{ID: p.ID, CharIndex: p.CharIndex, HP: p.HP, Role: p.Role})
	}
	return out
}

// SessionSnapshot 下发给客户端的完整会话快照（init 与 game-start 共用）
type SessionSnapshot struct {
	Players []Player `json:"players"`
	Minion  *Minion  `json:"minion"`
	Started bool     `json:"started"`
}

// Snapshot 拷贝当前状态生成快照
func (s *Session) Snapshot() SessionSnapshot {
	players := make([]Player, 0, len(s.order))
	for _, id := range s.order {
		players = append(players, *s.players[id])
	}
	var m *Minion
	if s.Minion != nil {
		mc := *s.Minion
		m = &mc
	}
	return SessionSnapshot{Players: players, Minion: m, Started: s.Started}
}
