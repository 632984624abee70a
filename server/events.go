package server

import (
	"encoding/json"
	"errors"
	"fmt"
)

// 入站消息信封：先看 type 判别字段，再按具体类型二次解码并校验
// 示例：{"type":"hit","targetId":"p-abc","sourceId":"p-def","damage":25}
type envelope struct {
	Type string `json:"type"`
}

// ErrUnknownEventType 未知 type 按约定静默忽略（与字段非法的消息区分开）
var ErrUnknownEventType = errors.New("unknown event type")

// Event 入站事件的带标签变体，解码成功后投递给房间串行处理
type Event interface {
	isEvent()
}

// JoinEvent 加入房间（身份取自连接，无载荷字段）
type JoinEvent struct{}

// SelectCharEvent 选择角色皮肤
type SelectCharEvent struct {
	CharIndex int `json:"charIndex"`
}

// MoveEvent 客户端上报的位置与朝向（服务端信任转发，不做合法性校验）
type MoveEvent struct {
	ID  string  `json:"id"`
	X   float64 `json:"x"`
	Z   float64 `json:"z"`
	Rot float64 `json:"rot"`
}

// StartGameEvent 开始对局
type StartGameEvent struct{}

// HitEvent 玩家受击；SourceID 可为空（环境伤害等无来源场合）
type HitEvent struct {
	TargetID string  `json:"targetId"`
	SourceID string  `json:"sourceId"`
	Damage   float64 `json:"damage"`
}

// MinionHitEvent 小怪受击
type MinionHitEvent struct {
	Damage float64 `json:"damage"`
}

// PickupEvent 拾取武器（不校验武器名是否合法）
type PickupEvent struct {
	ID     string `json:"id"`
	Weapon string `json:"weapon"`
}

func (JoinEvent) isEvent()       {}
func (SelectCharEvent) isEvent() {}
func (MoveEvent) isEvent()       {}
func (StartGameEvent) isEvent()  {}
func (HitEvent) isEvent()        {}
func (MinionHitEvent) isEvent()  {}
func (PickupEvent) isEvent()     {}

// DecodeEvent 解析一条入站消息
// 未知 type 返回 ErrUnknownEventType；已知 type 但字段非法返回具体错误，
// 调用方应丢弃该条消息并记日志，不得影响其他连接与 Tick
func DecodeEvent(payload []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("解析信封失败: %w", err)
	}
	switch env.Type {
	case "join":
		return JoinEvent{}, nil
	case "select-char":
		var ev SelectCharEvent
		if err := json.Unmarshal(payload, &ev); err != nil {
			return nil, fmt.Errorf("select-char: %w", err)
		}
		if ev.CharIndex < 0 {
			return nil, fmt.Errorf("select-char: charIndex %d 为负", ev.CharIndex)
		}
		return ev, nil
	case "move":
		var ev MoveEvent
		if err := json.Unmarshal(payload, &ev); err != nil {
			return nil, fmt.Errorf("move: %w", err)
		}
		if ev.ID == "" {
			return nil, errors.New("move: 缺少 id")
		}
		return ev, nil
	case "start-game":
		return StartGameEvent{}, nil
	case "hit":
		var ev HitEvent
		if err := json.Unmarshal(payload, &ev); err != nil {
			return nil, fmt.Errorf("hit: %w", err)
		}
		if ev.TargetID == "" {
			return nil, errors.New("hit: 缺少 targetId")
		}
		return ev, nil
	case "minion-hit":
		var ev MinionHitEvent
		if err := json.Unmarshal(payload, &ev); err != nil {
			return nil, fmt.Errorf("minion-hit: %w", err)
		}
		return ev, nil
	case "pickup":
		var ev PickupEvent
		if err := json.Unmarshal(payload, &ev); err != nil {
			return nil, fmt.Errorf("pickup: %w", err)
		}
		if ev.ID == "" {
			return nil, errors.New("pickup: 缺少 id")
		}
		return ev, nil
	default:
		return nil, ErrUnknownEventType
	}
}

// 出站消息一律带 type 判别字段，JSON 文本下发

// sessionMessage init（单播给加入者）与 game-start（广播）共用的快照消息
type sessionMessage struct {
	Type string `json:"type"`
	SessionSnapshot
}

// rosterMessage player-join 广播的花名册
type rosterMessage struct {
	Type    string        `json:"type"`
	Players []RosterEntry `json:"players"`
}

// playerUpdateMessage player-update 广播的完整玩家记录
type playerUpdateMessage struct {
	Type string `json:"type"`
	Player
}

// position update 消息中的平面坐标
type position struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// moveMessage update 广播（不回发给移动者本人）
type moveMessage struct {
	Type string   `json:"type"`
	ID   PlayerID `json:"id"`
	Pos  position `json:"pos"`
	Rot  float64  `json:"rot"`
}

// hitMessage hit 广播：受击者与其结算后血量
type hitMessage struct {
	Type     string   `json:"type"`
	TargetID PlayerID `json:"targetId"`
	HP       float64  `json:"hp"`
}

// minionHitMessage minion-hit 广播（血量可能为负）
type minionHitMessage struct {
	Type string  `json:"type"`
	HP   float64 `json:"hp"`
}

// minionUpdateMessage minion-update 广播：小怪每 Tick 的位置与血量
type minionUpdateMessage struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Z    float64 `json:"z"`
	HP   float64 `json:"hp"`
}

// pickupMessage pickup 广播
type pickupMessage struct {
	Type   string   `json:"type"`
	ID     PlayerID `json:"id"`
	Weapon string   `json:"weapon"`
}

// gameOverMessage game-over 广播
type gameOverMessage struct {
	Type   string `json:"type"`
	Winner string `json:"winner"`
	Reason string `json:"reason"`
}
