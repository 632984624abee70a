package server

import (
	"encoding/json"
	"net/http"
)

// HandleAdminConfig 提供房间规则的读取与更新（热更新基本规则）
// GET /admin/config?room=room-1  返回当前规则
// POST /admin/config?room=room-1 以 JSON 载荷更新部分字段
func HandleAdminConfig(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("room")
	if roomID == "" {
		roomID = "room-1"
	}
	room, ok := GetRoomManager().Room(roomID)
	if !ok {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}

	type patch struct {
		MinionSpeed         *float64 `json:"minionSpeed,omitempty"`
		MinionContactRange  *float64 `json:"minionContactRange,omitempty"`
		MinionContactDamage *float64 `json:"minionContactDamage,omitempty"`
		LatchGameOver       *bool    `json:"latchGameOver,omitempty"`
	}

	switch r.Method {
	case http.MethodGet:
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(room.Rules())
		return
	case http.MethodPost:
		var body patch
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		cur := room.UpdateRules(func(rules *Rules) {
			if body.MinionSpeed != nil {
				rules.MinionSpeed = *body.MinionSpeed
			}
			if body.MinionContactRange != nil {
				rules.MinionContactRange = *body.MinionContactRange
			}
			if body.MinionContactDamage != nil {
				rules.MinionContactDamage = *body.MinionContactDamage
			}
			if body.LatchGameOver != nil {
				rules.LatchGameOver = *body.LatchGameOver
			}
		})
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(cur)
		Log.Infof("rules updated: room=%s speed=%.2f range=%.2f damage=%.2f latch=%v",
			roomID, cur.MinionSpeed, cur.MinionContactRange, cur.MinionContactDamage, cur.LatchGameOver)
		return
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
}

// HandleMetrics 输出指定房间的运行指标
// GET /metrics?room=room-1
func HandleMetrics(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("room")
	if roomID == "" {
		roomID = "room-1"
	}
	room, ok := GetRoomManager().Room(roomID)
	if !ok {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}
	payload := map[string]any{
		"room":    roomID,
		"metrics": room.metrics.Snapshot(),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
