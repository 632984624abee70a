package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// idAlphabet 连接标识的取样字符集
const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// ClientConn 负责发送（写）数据到客户端的轻量包装
type ClientConn struct {
	ws   *websocket.Conn
	send chan []byte
}

func NewClientConn(ws *websocket.Conn) *ClientConn {
	return &ClientConn{
		ws:   ws,
		send: make(chan []byte, 64),
	}
}

// Enqueue 将要发送的消息压入队列（非阻塞，满则丢弃并返回 false）
func (c *ClientConn) Enqueue(b []byte) bool {
	select {
	case c.send <- b:
		return true
	default:
		// 为了实时性，丢弃消息（防止慢连接阻塞房间推进）
		return false
	}
}

// Close 关闭底层连接与发送队列
func (c *ClientConn) Close() {
	if c.send != nil {
		// 关闭发送通道以结束写协程
		close(c.send)
		c.send = nil
	}
	_ = c.ws.Close()
}

// writePump 独立协程，负责从 send 队列写出到 WS
func (c *ClientConn) writePump() {
	defer c.ws.Close()
	for msg := range c.send {
		c.ws.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// readPump 读取客户端消息，解码为带标签事件后注入房间
// 未知 type 静默忽略；已知 type 字段非法的消息记一条诊断后丢弃，
// 不影响其他连接与 Tick
func (c *ClientConn) readPump(room *Room, playerID PlayerID) {
	defer c.ws.Close()
	// 读泵退出时，通知房间在 run goroutine 中摘除该连接
	defer room.RequestLeave(playerID)
	c.ws.SetReadLimit(1 << 20) // 1MB
	c.ws.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.ws.SetPongHandler(func(string) error { c.ws.SetReadDeadline(time.Now().Add(60 * time.Second)); return nil })

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		ev, err := DecodeEvent(payload)
		if errors.Is(err, ErrUnknownEventType) {
			room.metrics.IncUnknownIgnored()
			continue
		}
		if err != nil {
			room.metrics.IncMalformed()
			Log.Debugf("room=%s player=%s 非法消息已丢弃: %v", room.ID, playerID, err)
			continue
		}
		room.OnEvent(playerID, ev)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// 演示环境：允许所有来源（生产环境需严格限制）
		return true
	},
}

// HandleWS WebSocket 接入：?room=room-1
// 玩家标识由服务端生成，对客户端不透明，同一会话内唯一
func HandleWS(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("room")
	if roomID == "" {
		roomID = "room-1"
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		Log.Warnf("upgrade error: %v", err)
		return
	}

	rm := GetRoomManager()
	room := rm.GetOrCreateRoom(roomID)
	playerID := PlayerID("p-" + defaultRandom.Token(8, idAlphabet))

	client := NewClientConn(ws)
	if !room.Attach(playerID, client) {
		// 房间恰好在回收中，让客户端重连走新房间
		_ = ws.Close()
		return
	}
	Log.Infof("room=%s player=%s connected", roomID, playerID)

	go client.writePump()
	go client.readPump(room, playerID)
}
