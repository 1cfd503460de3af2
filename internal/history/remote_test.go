package history

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"
)

func TestClient_AppendFormatsRow(t *testing.T) {
	var got appendRequest
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/rows" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret")
	rec := Record{
		PlayedAt:       time.Date(2025, 6, 1, 14, 5, 9, 0, time.UTC),
		TotalQuestions: 10,
		CorrectCount:   7,
		Accuracy:       70,
		Operation:      "mixed",
		TimeLimit:      5,
		Elapsed:        83400 * time.Millisecond,
	}
	if err := client.Append(context.Background(), rec); err != nil {
		t.Fatalf("Append: %v", err)
	}

	want := []string{"2025-06-01", "14:05:09", "10", "7", "70.0%", "mixed", "5s", "83.4s"}
	if !reflect.DeepEqual(got.Row, want) {
		t.Errorf("row = %v, want %v", got.Row, want)
	}
	if auth != "Bearer secret" {
		t.Errorf("auth header = %q", auth)
	}
}

func TestClient_AppendServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	if err := client.Append(context.Background(), testRecord(70)); err == nil {
		t.Fatal("expected error on 500 response")
	}
}

func TestClient_AccuraciesSkipsBadRows(t *testing.T) {
	rows := rowsResponse{Rows: [][]string{
		{"2025-06-01", "09:00:00", "10", "7", "70.0%", "addition", "5s", "40.0s"},
		{"2025-06-01", "09:10:00", "10", "10", "100.0%", "mixed", "3s", "25.0s"},
		{"short", "row"},
		{"2025-06-01", "09:20:00", "10", "9", "garbage", "mixed", "3s", "25.0s"},
		{"2025-06-01", "09:30:00", "10", "9", "150.0%", "mixed", "3s", "25.0s"},
	}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/rows" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(rows)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	accs, err := client.Accuracies(context.Background())
	if err != nil {
		t.Fatalf("Accuracies: %v", err)
	}
	if !reflect.DeepEqual(accs, []float64{70, 100}) {
		t.Errorf("accuracies = %v, want [70 100]", accs)
	}
}

func TestClient_AccuraciesUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	if _, err := client.Accuracies(context.Background()); err == nil {
		t.Fatal("expected error on 502 response")
	}
}
