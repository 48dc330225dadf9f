package server

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
)

var keepaliveClient = &http.Client{Timeout: 10 * time.Second}

// StartKeepalive schedules a once-a-minute ping to the configured self URL so
// an idle host is not put to sleep. Returns nil when no URL is configured.
// Failures are swallowed; the ping has no observable failure mode.
func (s *Server) StartKeepalive() *cron.Cron {
	if s.cfg.RenderServerURL == "" {
		return nil
	}
	c := cron.New()
	_, err := c.AddFunc("@every 1m", s.pingSelf)
	if err != nil {
		log.Printf("[keepalive] schedule failed: %v", err)
		return nil
	}
	c.Start()
	return c
}

func (s *Server) pingSelf() {
	payload, _ := json.Marshal(map[string]string{"data": "Server is running"})
	resp, err := keepaliveClient.Post(s.cfg.RenderServerURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		log.Printf("[keepalive] ping failed: %v", err)
		return
	}
	resp.Body.Close()
}
