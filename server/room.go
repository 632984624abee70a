package server

import (
	"encoding/json"
	"sync"
	"time"
)

// tickInterval 小怪 AI 的推进周期
const tickInterval = 50 * time.Millisecond

// attachRequest 新连接挂入房间的请求
type attachRequest struct {
	id   PlayerID
	conn *ClientConn
}

// inboundEvent 读协程投递给房间的事件，带来源连接标识
type inboundEvent struct {
	from PlayerID
	ev   Event
}

// Room 房间：权威对局状态由唯一的 run goroutine 持有，
// 入站事件与定时 Tick 是仅有的两个变更来源，天然串行不交错
type Room struct {
	ID string

	game  *Game
	conns map[PlayerID]*ClientConn

	attachCh chan attachRequest
	leaveCh  chan PlayerID
	eventCh  chan inboundEvent
	stopCh   chan struct{}
	stopOnce sync.Once

	rulesMu sync.Mutex
	rules   Rules

	// onEmpty 由管理器注入：最后一个连接断开时回收房间并取消 Tick
	onEmpty func(roomID string)

	metrics *RoomMetrics
}

// NewRoom 创建房间并装配对局控制器
func NewRoom(id string, rnd Random) *Room {
	r := &Room{
		ID:       id,
		conns:    make(map[PlayerID]*ClientConn),
		attachCh: make(chan attachRequest, 8),
		leaveCh:  make(chan PlayerID, 64),
		eventCh:  make(chan inboundEvent, 256), // 足够缓冲，网络读不拖累 Tick
		stopCh:   make(chan struct{}),
		rules:    DefaultRules(),
		metrics:  &RoomMetrics{},
	}
	r.game = NewGame(r, rnd)
	return r
}

// Start 启动房间的串行推进循环
func (r *Room) Start() {
	go r.run()
}

// Close 停止房间：Tick 取消、全部连接关闭，只执行一次
func (r *Room) Close() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}

// Attach 将连接挂入房间；房间已停止时返回 false
func (r *Room) Attach(id PlayerID, conn *ClientConn) bool {
	select {
	case r.attachCh <- attachRequest{id: id, conn: conn}:
		return true
	case <-r.stopCh:
		return false
	}
}

// OnEvent 入站事件注入（非阻塞，拥塞时丢弃以保 Tick 准时）
func (r *Room) OnEvent(from PlayerID, ev Event) {
	select {
	case r.eventCh <- inboundEvent{from: from, ev: ev}:
	case <-r.stopCh:
	default:
		r.metrics.IncDiscarded()
	}
}

// RequestLeave 请求在 run goroutine 中摘除连接，避免并发改动房间状态
func (r *Room) RequestLeave(id PlayerID) {
	select {
	case r.leaveCh <- id:
	case <-r.stopCh:
	}
}

// Rules 取当前规则的副本
func (r *Room) Rules() Rules {
	r.rulesMu.Lock()
	defer r.rulesMu.Unlock()
	return r.rules
}

// UpdateRules 热更新规则（管理接口调用，下一次事件或 Tick 生效）
func (r *Room) UpdateRules(fn func(*Rules)) Rules {
	r.rulesMu.Lock()
	defer r.rulesMu.Unlock()
	fn(&r.rules)
	return r.rules
}

// run 核心循环：事件、连接增减与 Tick 在同一 goroutine 内串行完成
func (r *Room) run() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-r.stopCh:
			for id, c := range r.conns {
				c.Close()
				delete(r.conns, id)
			}
			return
		case a := <-r.attachCh:
			r.conns[a.id] = a.conn
		case id := <-r.leaveCh:
			r.detach(id)
		case in := <-r.eventCh:
			r.game.rules = r.Rules()
			r.game.HandleEvent(in.from, in.ev)
			r.metrics.IncAccepted()
		case <-ticker.C:
			start := time.Now()
			r.game.rules = r.Rules()
			r.game.MinionTick()
			r.metrics.AddTick(time.Since(start).Nanoseconds())
		}
	}
}

// detach 摘除连接；花名册条目保留，直到同名重新加入或开局重置
func (r *Room) detach(id PlayerID) {
	c, ok := r.conns[id]
	if !ok {
		return
	}
	c.Close()
	delete(r.conns, id)
	if len(r.conns) == 0 && r.onEmpty != nil {
		r.onEmpty(r.ID)
	}
}

// Send 单播；仅允许 run goroutine（经由对局逻辑）调用
func (r *Room) Send(id PlayerID, msg any) {
	c, ok := r.conns[id]
	if !ok {
		return
	}
	b, err := json.Marshal(msg)
	if err != nil {
		Log.Warnf("room=%s 消息编码失败: %v", r.ID, err)
		return
	}
	if !c.Enqueue(b) {
		r.metrics.IncSendDropped()
	}
}

// Broadcast 广播；exclude 中的连接不发（move 事件排除来源本人）
func (r *Room) Broadcast(msg any, exclude ...PlayerID) {
	b, err := json.Marshal(msg)
	if err != nil {
		Log.Warnf("room=%s 消息编码失败: %v", r.ID, err)
		return
	}
outer:
	for id, c := range r.conns {
		for _, ex := range exclude {
			if id == ex {
				continue outer
			}
		}
		if !c.Enqueue(b) {
			r.metrics.IncSendDropped()
		}
	}
}
