package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListUploads(t *testing.T) {
	h, _, _ := newTestHandler(t)
	router := SetupRouter(h, nil)

	postUpload(t, h, []byte(`{"scenario": "first"}`))
	postUpload(t, h, []byte(`{"scenario": "second"}`))

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/uploads", nil)
	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp struct {
		Uploads []struct {
			ID       string `json:"id"`
			Scenario string `json:"scenario"`
			Kind     string `json:"kind"`
		} `json:"uploads"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(resp.Uploads) != 2 {
		t.Fatalf("Expected 2 uploads, got %d", len(resp.Uploads))
	}
	if resp.Uploads[0].Scenario != "second" {
		t.Errorf("Expected newest upload first, got %s", resp.Uploads[0].Scenario)
	}
	if resp.Uploads[0].Kind != "flat" {
		t.Errorf("Expected flat kind, got %s", resp.Uploads[0].Kind)
	}
}

func TestGetUpload(t *testing.T) {
	h, _, _ := newTestHandler(t)
	router := SetupRouter(h, nil)

	w := postUpload(t, h, []byte(`{"scenario": "walking"}`))
	id := decodeBody(t, w)["id"].(string)

	w2 := httptest.NewRecorder()
	r2 := httptest.NewRequest("GET", "/uploads/"+id, nil)
	router.ServeHTTP(w2, r2)

	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w2.Code)
	}

	resp := decodeBody(t, w2)
	if resp["scenario"] != "walking" {
		t.Errorf("Expected scenario 'walking', got %v", resp["scenario"])
	}
}

func TestGetUploadNotFound(t *testing.T) {
	h, _, _ := newTestHandler(t)
	router := SetupRouter(h, nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/uploads/non-existent", nil)
	router.ServeHTTP(w, r)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestGetStats(t *testing.T) {
	h, _, _ := newTestHandler(t)
	router := SetupRouter(h, nil)

	postUpload(t, h, []byte(`{"scenario": "walking"}`))

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/stats", nil)
	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp map[string]int64
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp["flatUploads"] != 1 {
		t.Errorf("Expected 1 flat upload, got %d", resp["flatUploads"])
	}
}

func TestGetVersion(t *testing.T) {
	h, _, _ := newTestHandler(t)
	router := SetupRouter(h, nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/version", nil)
	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	resp := decodeBody(t, w)
	if resp["name"] != "sensor-collect-server" {
		t.Errorf("Expected name 'sensor-collect-server', got %v", resp["name"])
	}
}

func TestIndexPage(t *testing.T) {
	h, _, _ := newTestHandler(t)
	router := SetupRouter(h, nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Unexpected content type: %s", ct)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("<html")) {
		t.Error("Expected HTML body")
	}
}
