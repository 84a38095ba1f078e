package storeclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ListBots(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/bots", r.URL.Path)
		w.Write([]byte(`[{"id":"BOT-1","name":"Bot 1","department":"Simulation","nfc":true,"motion":false,"avatar":"a"}]`))
	}))
	defer srv.Close()

	bots, err := New(srv.URL+"/api/", nil).ListBots(context.Background())

	require.NoError(t, err)
	require.Len(t, bots, 1)
	assert.Equal(t, models.BotEntry{ID: "BOT-1", Name: "Bot 1", Department: "Simulation", NFC: true, Avatar: "a"}, bots[0])
}

func TestClient_AppendLog(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/logs", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	entry := models.ActivityLogEntry{
		ID: "1-motion", Time: "2026-01-01 00:00:00", Type: models.LogTypeMotion,
		StaffID: "DEVICE-1", StaffName: "ESP32 Pad", Description: "Recent motion detected", Location: "ESP32 Zone",
	}
	require.NoError(t, New(srv.URL+"/api", nil).AppendLog(context.Background(), entry))

	assert.Equal(t, "1-motion", got["id"])
	assert.Equal(t, "MOTION", got["type"])
	assert.Equal(t, "DEVICE-1", got["staffId"])
	assert.Equal(t, "ESP32 Zone", got["location"])
}

func TestClient_SyncStaff(t *testing.T) {
	var got models.StaffEntry
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/staff/sync", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	entry := models.StaffEntry{ID: "DEVICE-1", Status: models.StatusIdle, MotionActive: true}
	require.NoError(t, New(srv.URL+"/api", nil).SyncStaff(context.Background(), entry))

	assert.Equal(t, entry, got)
}

func TestClient_DeleteBotEscapesID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/bots/BOT%2F1", r.URL.EscapedPath())
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL+"/api", nil).DeleteBot(context.Background(), "BOT/1"))
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"db down"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).ListLogs(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Code)
	assert.Contains(t, apiErr.Body, "db down")
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	err := New(srv.URL, nil).UpsertBot(context.Background(), models.BotEntry{ID: "BOT-1"})
	assert.Error(t, err)
}
