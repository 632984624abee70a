package server

import (
	"sync/atomic"
)

// RoomMetrics 记录房间运行期的关键指标（用于监控与调试）
type RoomMetrics struct {
	TickCount       int64 // 统计的 Tick 次数
	EventsAccepted  int64 // 被接受并处理的事件数
	EventsMalformed int64 // 已知类型但字段非法而丢弃的消息数
	UnknownIgnored  int64 // 未知 type 而静默忽略的消息数
	EventsDiscarded int64 // 因通道满被丢弃的事件数
	SendsDropped    int64 // 因连接发送队列满被丢弃的出站消息数
	TotalTickNs     int64 // Tick 累计耗时（纳秒）
}

func (m *RoomMetrics) IncAccepted()       { atomic.AddInt64(&m.EventsAccepted, 1) }
func (m *RoomMetrics) IncMalformed()      { atomic.AddInt64(&m.EventsMalformed, 1) }
func (m *RoomMetrics) IncUnknownIgnored() { atomic.AddInt64(&m.UnknownIgnored, 1) }
func (m *RoomMetrics) IncDiscarded()      { atomic.AddInt64(&m.EventsDiscarded, 1) }
func (m *RoomMetrics) IncSendDropped()    { atomic.AddInt64(&m.SendsDropped, 1) }
func (m *RoomMetrics) AddTick(ns int64) {
	atomic.AddInt64(&m.TickCount, 1)
	atomic.AddInt64(&m.TotalTickNs, ns)
}

// Snapshot 返回只读副本，便于 HTTP 输出
func (m *RoomMetrics) Snapshot() map[string]any {
	tick := atomic.LoadInt64(&m.TickCount)
	total := atomic.LoadInt64(&m.TotalTickNs)
	var avgMs float64
	if tick > 0 {
		avgMs = float64(total) / float64(tick) / 1e6
	}
	return map[string]any{
		"tick_count":       tick,
		"events_accepted":  atomic.LoadInt64(&m.EventsAccepted),
		"events_malformed": atomic.LoadInt64(&m.EventsMalformed),
		"unknown_ignored":  atomic.LoadInt64(&m.UnknownIgnored),
		"events_discarded": atomic.LoadInt64(&m.EventsDiscarded),
		"sends_dropped":    atomic.LoadInt64(&m.SendsDropped),
		"avg_tick_ms":      avgMs,
	}
}
