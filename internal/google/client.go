package google

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a small read-mostly wrapper over the Google REST endpoints this
// service touches. It keeps a very small surface area tailored to our needs.
type Client struct {
	httpClient *http.Client

	// Base URLs are fields so tests can point at a local server.
	userInfoURL string
	tasksURL    string
	calendarURL string
	sheetsAPI   string
}

func NewClient() *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		userInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
		tasksURL:    "https://tasks.googleapis.com/tasks/v1/lists/@default/tasks",
		calendarURL: "https://www.googleapis.com/calendar/v3/calendars/primary/events",
		sheetsAPI:   "https://sheets.googleapis.com/v4/spreadsheets",
	}
}

func (c *Client) getJSON(ctx context.Context, token, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("google api %s failed: %s", req.URL.Path, strings.TrimSpace(string(b)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// UserInfo returns the authenticated user's profile.
func (c *Client) UserInfo(ctx context.Context, token string) (map[string]any, error) {
	var out map[string]any
	if err := c.getJSON(ctx, token, c.userInfoURL, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Tasks returns the default task list.
func (c *Client) Tasks(ctx context.Context, token string) (map[string]any, error) {
	var out map[string]any
	if err := c.getJSON(ctx, token, c.tasksURL, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CalendarEvents returns events from the primary calendar.
func (c *Client) CalendarEvents(ctx context.Context, token string) (map[string]any, error) {
	var out map[string]any
	if err := c.getJSON(ctx, token, c.calendarURL, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SheetValues reads a value range (e.g. "Sheet1!A:B") from a spreadsheet.
func (c *Client) SheetValues(ctx context.Context, token, sheetID, valueRange string) ([][]string, error) {
	u := fmt.Sprintf("%s/%s/values/%s", c.sheetsAPI, url.PathEscape(sheetID), url.PathEscape(valueRange))
	var out struct {
		Values [][]string `json:"values"`
	}
	if err := c.getJSON(ctx, token, u, &out); err != nil {
		return nil, err
	}
	return out.Values, nil
}

// AppendSheetRow appends one row to a spreadsheet value range.
func (c *Client) AppendSheetRow(ctx context.Context, token, sheetID, valueRange string, row []string) error {
	u := fmt.Sprintf("%s/%s/values/%s:append?valueInputOption=RAW",
		c.sheetsAPI, url.PathEscape(sheetID), url.PathEscape(valueRange))
	payload := map[string]any{"values": [][]string{row}}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bb, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sheets append failed: %s", strings.TrimSpace(string(bb)))
	}
	return nil
}
