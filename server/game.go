package server

// Gateway 房间运行时提供的下发通道；对局逻辑只管发，不关心连接细节
type Gateway interface {
	// Send 单播给指定连接；连接不存在时静默丢弃
	Send(id PlayerID, msg any)
	// Broadcast 广播给房间内全部连接，可排除若干来源
	Broadcast(msg any, exclude ...PlayerID)
}

// Rules 对局规则参数，支持通过管理接口热更新
type Rules struct {
	MinionSpeed         float64 `json:"minionSpeed"`
	MinionContactRange  float64 `json:"minionContactRange"`
	MinionContactDamage float64 `json:"minionContactDamage"`
	// LatchGameOver 打开后终局广播只发一次（默认关闭：每次满足条件都会重播）
	LatchGameOver bool `json:"latchGameOver"`
}

// DefaultRules 默认规则
func DefaultRules() Rules {
	return Rules{
		MinionSpeed:         0.15,
		MinionContactRange:  3.5,
		MinionContactDamage: 0.5,
	}
}

// Game 单房间对局控制器：持有权威会话状态，所有调用必须由
// 房间的单一 goroutine 串行发起，方法内不阻塞、不做 I/O
type Game struct {
	session *Session
	gw      Gateway
	rand    Random
	rules   Rules
	// ended 终局闩锁，仅在 Rules.LatchGameOver 打开时参与判定
	ended bool
}

// NewGame 创建对局控制器；会话延迟到首个入站事件才建立
func NewGame(gw Gateway, rnd Random) *Game {
	return &Game{gw: gw, rand: rnd, rules: DefaultRules()}
}

// HandleEvent 入站事件总分发，from 为事件来源连接的标识
func (g *Game) HandleEvent(from PlayerID, ev Event) {
	if g.session == nil {
		g.session = NewSession()
	}
	switch ev := ev.(type) {
	case JoinEvent:
		g.handleJoin(from)
	case SelectCharEvent:
		g.handleSelectChar(from, ev.CharIndex)
	case MoveEvent:
		g.handleMove(from, ev)
	case StartGameEvent:
		g.handleStartGame()
	case HitEvent:
		g.handleHit(ev)
	case MinionHitEvent:
		g.handleMinionHit(ev.Damage)
	case PickupEvent:
		g.handlePickup(ev)
	}
}
