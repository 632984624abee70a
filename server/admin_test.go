package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminConfigGetAndPatch(t *testing.T) {
	room := GetRoomManager().GetOrCreateRoom("admin-test")
	t.Cleanup(room.Close)

	req := httptest.NewRequest(http.MethodGet, "/admin/config?room=admin-test", nil)
	rec := httptest.NewRecorder()
	HandleAdminConfig(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got Rules
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, DefaultRules(), got)

	body := `{"minionSpeed":0.3,"latchGameOver":true}`
	req = httptest.NewRequest(http.MethodPost, "/admin/config?room=admin-test", strings.NewReader(body))
	rec = httptest.NewRecorder()
	HandleAdminConfig(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	cur := room.Rules()
	assert.Equal(t, 0.3, cur.MinionSpeed)
	assert.True(t, cur.LatchGameOver)
	assert.Equal(t, 3.5, cur.MinionContactRange, "未指定字段保持原值")
}

func TestAdminConfigRejectsBadJSONAndMethod(t *testing.T) {
	room := GetRoomManager().GetOrCreateRoom("admin-bad")
	t.Cleanup(room.Close)

	req := httptest.NewRequest(http.MethodPost, "/admin/config?room=admin-bad", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	HandleAdminConfig(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/admin/config?room=admin-bad", nil)
	rec = httptest.NewRecorder()
	HandleAdminConfig(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestAdminEndpointsUnknownRoom(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/config?room=nope", nil)
	rec := httptest.NewRecorder()
	HandleAdminConfig(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/metrics?room=nope", nil)
	rec = httptest.NewRecorder()
	HandleMetrics(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpointShape(t *testing.T) {
	room := GetRoomManager().GetOrCreateRoom("metrics-test")
	t.Cleanup(room.Close)
	room.metrics.IncAccepted()
	room.metrics.IncMalformed()

	req := httptest.NewRequest(http.MethodGet, "/metrics?room=metrics-test", nil)
	rec := httptest.NewRecorder()
	HandleMetrics(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Room    string         `json:"room"`
		Metrics map[string]any `json:"metrics"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "metrics-test", payload.Room)
	assert.Equal(t, float64(1), payload.Metrics["events_accepted"])
	assert.Equal(t, float64(1), payload.Metrics["events_malformed"])
}
