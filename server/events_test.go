package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEventKnownTypes(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		want    Event
	}{
		{"join", `{"type":"join"}`, JoinEvent{}},
		{"select-char", `{"type":"select-char","charIndex":2}`, SelectCharEvent{CharIndex: 2}},
		{"move", `{"type":"move","id":"p-1","x":1.5,"z":-2,"rot":0.7}`, MoveEvent{ID: "p-1", X: 1.5, Z: -2, Rot: 0.7}},
		{"start-game", `{"type":"start-game"}`, StartGameEvent{}},
		{"hit", `{"type":"hit","targetId":"p-1","sourceId":"p-2","damage":25}`, HitEvent{TargetID: "p-1", SourceID: "p-2", Damage: 25}},
		{"hit 无来源", `{"type":"hit","targetId":"p-1","damage":0.5}`, HitEvent{TargetID: "p-1", Damage: 0.5}},
		{"minion-hit", `{"type":"minion-hit","damage":40}`, MinionHitEvent{Damage: 40}},
		{"pickup", `{"type":"pickup","id":"p-1","weapon":"axe"}`, PickupEvent{ID: "p-1", Weapon: "axe"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev, err := DecodeEvent([]byte(tc.payload))
			require.NoError(t, err)
			assert.Equal(t, tc.want, ev)
		})
	}
}

func TestDecodeEventUnknownTypeIsSentinel(t *testing.T) {
	for _, payload := range []string{`{"type":"dance"}`, `{"type":""}`, `{}`} {
		_, err := DecodeEvent([]byte(payload))
		assert.ErrorIs(t, err, ErrUnknownEventType, payload)
	}
}

// 已知类型但字段非法：返回具体错误而不是未知类型哨兵
func TestDecodeEventMalformedPayloads(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"非 JSON", `not json at all`},
		{"负的皮肤编号", `{"type":"select-char","charIndex":-1}`},
		{"皮肤编号类型错误", `{"type":"select-char","charIndex":"two"}`},
		{"move 缺 id", `{"type":"move","x":1,"z":2,"rot":0}`},
		{"hit 缺 targetId", `{"type":"hit","damage":10}`},
		{"伤害类型错误", `{"type":"minion-hit","damage":"lots"}`},
		{"pickup 缺 id", `{"type":"pickup","weapon":"axe"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeEvent([]byte(tc.payload))
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrUnknownEventType)
		})
	}
}
