package server

import "sync"

// RoomManager 管理多个房间的生命周期；房间之间不共享任何状态
type RoomManager struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

var (
	defaultManager *RoomManager
	once           sync.Once
)

// GetRoomManager 单例房间管理器
func GetRoomManager() *RoomManager {
	once.Do(func() {
		defaultManager = &RoomManager{rooms: make(map[string]*Room)}
	})
	return defaultManager
}

// GetOrCreateRoom 获取或创建房间，并确保推进循环已启动
func (m *RoomManager) GetOrCreateRoom(id string) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		r = NewRoom(id, defaultRandom)
		r.onEmpty = m.removeRoom
		m.rooms[id] = r
		r.Start()
	}
	return r
}

// Room 只读查找，供管理与监控接口使用
func (m *RoomManager) Room(id string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	return r, ok
}

// removeRoom 房间的最后一个连接断开时回收：摘除并取消 Tick
func (m *RoomManager) removeRoom(id string) {
	m.mu.Lock()
	r, ok := m.rooms[id]
	if ok {
		delete(m.rooms, id)
	}
	m.mu.Unlock()
	if ok {
		r.Close()
		Log.Infof("room=%s 已空，回收", id)
	}
}
