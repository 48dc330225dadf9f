package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(ts *httptest.Server) *Client {
	c := NewClient()
	c.userInfoURL = ts.URL + "/userinfo"
	c.tasksURL = ts.URL + "/tasks"
	c.calendarURL = ts.URL + "/calendar"
	c.sheetsAPI = ts.URL + "/sheets"
	return c
}

func TestUserInfoSendsBearerToken(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{"given_name": "Ada"})
	}))
	defer ts.Close()

	profile, err := newTestClient(ts).UserInfo(context.Background(), "tok123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if profile["given_name"] != "Ada" {
		t.Fatalf("unexpected profile: %v", profile)
	}
}

func TestTasksNon2xxIsError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer ts.Close()

	_, err := newTestClient(ts).Tasks(context.Background(), "tok")
	if err == nil {
		t.Fatalf("expected error on 403")
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("expected response body in error, got %v", err)
	}
}

func TestCalendarEvents(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"items": []any{map[string]any{"summary": "standup"}}})
	}))
	defer ts.Close()

	events, err := newTestClient(ts).CalendarEvents(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := events["items"]; !ok {
		t.Fatalf("expected items key, got %v", events)
	}
}

func TestSheetValuesAndAppend(t *testing.T) {
	var appended [][]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			var body struct {
				Values [][]string `json:"values"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			appended = body.Values
			_ = json.NewEncoder(w).Encode(map[string]any{"updates": map[string]any{}})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"values": [][]string{{"coffee", "black"}}})
	}))
	defer ts.Close()

	c := newTestClient(ts)
	rows, err := c.SheetValues(context.Background(), "tok", "sheet1", "Sheet1!A:B")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0][1] != "black" {
		t.Fatalf("unexpected rows: %v", rows)
	}

	if err := c.AppendSheetRow(context.Background(), "tok", "sheet1", "Sheet1!A:B", []string{"tea", "green"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(appended) != 1 || appended[0][0] != "tea" {
		t.Fatalf("unexpected appended rows: %v", appended)
	}
}
