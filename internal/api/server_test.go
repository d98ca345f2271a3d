package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/jdelacruz/bingo-companion/internal/events"
	"github.com/jdelacruz/bingo-companion/internal/game"
	"github.com/jdelacruz/bingo-companion/internal/storage/repository"
)

func setupTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
		CREATE TABLE cards (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			cells TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE patterns (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			grid TEXT NOT NULL,
			builtin INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE sessions (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			called_numbers TEXT NOT NULL DEFAULT '[]',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	svc := game.NewService(
		repository.NewCardRepository(db),
		repository.NewPatternRepository(db),
		repository.NewSessionRepository(db),
		events.NewDispatcher(),
	)
	if err := svc.EnsureBuiltinPatterns(context.Background()); err != nil {
		t.Fatalf("Failed to seed builtin patterns: %v", err)
	}

	server := NewServer(nil, svc)
	ts := httptest.NewServer(server.router)
	t.Cleanup(ts.Close)

	return server, ts
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request body: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	return resp
}

func decodeData(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("Failed to decode response envelope: %v", err)
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			t.Fatalf("Failed to decode response data: %v", err)
		}
	}
}

func TestNewServer(t *testing.T) {
	server := NewServer(nil, nil)

	if server == nil {
		t.Fatal("NewServer returned nil")
	}
	if server.port != 8080 {
		t.Errorf("Expected default port 8080, got %d", server.port)
	}
	if server.wsHub == nil {
		t.Error("Expected wsHub to be initialized")
	}
}

func TestServer_Port(t *testing.T) {
	server := NewServer(&Config{Port: 9999}, nil)

	if server.Port() != 9999 {
		t.Errorf("Expected port 9999, got %d", server.Port())
	}
}

func TestHealthCheck(t *testing.T) {
	_, ts := setupTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var health map[string]interface{}
	decodeData(t, resp, &health)
	if health["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", health["status"])
	}
}

func TestContentTypeEnforced(t *testing.T) {
	_, ts := setupTestServer(t)

	resp, err := http.Post(ts.URL+"/api/v1/cards", "text/plain", bytes.NewReader([]byte(`{"name":"x"}`)))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Errorf("Expected status 415, got %d", resp.StatusCode)
	}
}

func TestCardEndpoints(t *testing.T) {
	_, ts := setupTestServer(t)

	resp := postJSON(t, ts.URL+"/api/v1/cards", map[string]interface{}{"name": "My Card"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", resp.StatusCode)
	}

	var card struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	decodeData(t, resp, &card)
	if card.ID == "" {
		t.Fatal("Expected card ID to be set")
	}
	if card.Name != "My Card" {
		t.Errorf("Expected name %q, got %q", "My Card", card.Name)
	}

	resp, err := http.Get(ts.URL + "/api/v1/cards/" + card.ID)
	if err != nil {
		t.Fatalf("GET card failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/api/v1/cards/does-not-exist")
	if err != nil {
		t.Fatalf("GET card failed: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestPatternEndpoints(t *testing.T) {
	_, ts := setupTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/patterns")
	if err != nil {
		t.Fatalf("GET patterns failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var patterns []struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Builtin bool   `json:"builtin"`
	}
	decodeData(t, resp, &patterns)
	if len(patterns) != 6 {
		t.Fatalf("Expected 6 builtin patterns, got %d", len(patterns))
	}

	// Builtins may not be deleted.
	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/v1/patterns/"+patterns[0].ID, nil)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE pattern failed: %v", err)
	}
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected status 403 deleting builtin, got %d", delResp.StatusCode)
	}

	// Reserved names may not be taken by custom patterns.
	resp = postJSON(t, ts.URL+"/api/v1/patterns", map[string]interface{}{
		"name": "Dikit",
		"grid": [][]bool{{true}},
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400 for reserved name, got %d", resp.StatusCode)
	}
}

func TestSessionCallFlow(t *testing.T) {
	_, ts := setupTestServer(t)

	resp := postJSON(t, ts.URL+"/api/v1/sessions", map[string]interface{}{"name": "Friday Night"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", resp.StatusCode)
	}

	var session struct {
		ID        string `json:"id"`
		Remaining int    `json:"remaining"`
	}
	decodeData(t, resp, &session)
	if session.Remaining != 75 {
		t.Errorf("Expected 75 remaining, got %d", session.Remaining)
	}

	callURL := fmt.Sprintf("%s/api/v1/sessions/%s/calls", ts.URL, session.ID)

	resp = postJSON(t, callURL, map[string]int{"number": 42})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var analysis struct {
		Called    []int `json:"called_numbers"`
		Remaining int   `json:"remaining"`
	}
	decodeData(t, resp, &analysis)
	if len(analysis.Called) != 1 || analysis.Called[0] != 42 {
		t.Errorf("Expected called [42], got %v", analysis.Called)
	}
	if analysis.Remaining != 74 {
		t.Errorf("Expected 74 remaining, got %d", analysis.Remaining)
	}

	// Out-of-range and duplicate calls are rejected.
	resp = postJSON(t, callURL, map[string]int{"number": 76})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400 for out-of-range number, got %d", resp.StatusCode)
	}

	resp = postJSON(t, callURL, map[string]int{"number": 42})
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("Expected status 409 for duplicate number, got %d", resp.StatusCode)
	}

	// Undo takes back the last call.
	req, err := http.NewRequest(http.MethodDelete, callURL+"/last", nil)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	undoResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE last call failed: %v", err)
	}
	if undoResp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", undoResp.StatusCode)
	}
	decodeData(t, undoResp, &analysis)
	if len(analysis.Called) != 0 {
		t.Errorf("Expected no called numbers after undo, got %v", analysis.Called)
	}
}

func TestSessionAnalysisEndpoint(t *testing.T) {
	_, ts := setupTestServer(t)

	resp := postJSON(t, ts.URL+"/api/v1/cards", map[string]interface{}{"name": "Card A"})
	decodeData(t, resp, nil)

	resp = postJSON(t, ts.URL+"/api/v1/sessions", map[string]interface{}{"name": ""})
	var session struct {
		ID string `json:"id"`
	}
	decodeData(t, resp, &session)

	analysisURL := fmt.Sprintf("%s/api/v1/sessions/%s/analysis", ts.URL, session.ID)
	getResp, err := http.Get(analysisURL)
	if err != nil {
		t.Fatalf("GET analysis failed: %v", err)
	}
	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", getResp.StatusCode)
	}

	var analysis struct {
		SessionID string `json:"session_id"`
		Summary   struct {
			Winners []interface{} `json:"winners"`
		} `json:"summary"`
	}
	decodeData(t, getResp, &analysis)
	if analysis.SessionID != session.ID {
		t.Errorf("Expected session ID %s, got %s", session.ID, analysis.SessionID)
	}
	if len(analysis.Summary.Winners) != 0 {
		t.Errorf("Expected no winners on a fresh session, got %d", len(analysis.Summary.Winners))
	}
}
