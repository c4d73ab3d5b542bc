package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"gopkg.in/go-playground/assert.v1"
)

func TestLogger_WritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("event-portal", &buf, "info")

	log.Error("order_advance_failed", "platform rejected transition", "req-1", errors.New("conflict"), map[string]interface{}{"order_id": 7})

	var entry map[string]interface{}
	assert.Equal(t, json.Unmarshal(buf.Bytes(), &entry), nil)
	assert.Equal(t, entry["msg"], "platform rejected transition")
	assert.Equal(t, entry["service"], "event-portal")
	assert.Equal(t, entry["action"], "order_advance_failed")
	assert.Equal(t, entry["request_id"], "req-1")
	assert.Equal(t, entry["error"].(map[string]interface{})["msg"], "conflict")
	assert.Equal(t, entry["details"].(map[string]interface{})["order_id"], float64(7))
}

func TestLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("event-portal", &buf, "warn")

	log.Info("noise", "dropped", "", nil)
	log.Debug("noise", "dropped", "", nil)
	assert.Equal(t, buf.Len(), 0)

	log.Warn("slow_upstream", "kept", "", nil)
	assert.NotEqual(t, buf.Len(), 0)
}
