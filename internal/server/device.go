package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"savas-backend/internal/types"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handleDevice owns one device connection for its lifetime: register, read
// state updates in a loop, unregister on any exit. State entries survive the
// disconnect so the last report stays inspectable.
func (s *Server) handleDevice(w http.ResponseWriter, r *http.Request) {
	deviceID := r.URL.Query().Get("device_id")
	deviceType := r.URL.Query().Get("device_type")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}

	if deviceID == "" || deviceType == "" {
		msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "device_id and device_type are required")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		conn.Close()
		return
	}

	s.devices.Register(deviceID, conn)
	log.Printf("[ws] device connected: %s (%s)", deviceID, deviceType)

	defer func() {
		s.devices.Unregister(deviceID, conn)
		conn.Close()
		log.Printf("[ws] device disconnected: %s", deviceID)
	}()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[ws] read error for %s: %v", deviceID, err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			log.Printf("[ws] ignoring non-text frame from %s", deviceID)
			continue
		}

		var payload map[string]any
		if err := json.Unmarshal(data, &payload); err != nil {
			// Malformed reports are dropped; the connection stays open.
			continue
		}

		payload["device_id"] = deviceID
		payload["device_type"] = deviceType
		payload["last_seen"] = time.Now().Unix()
		s.devices.SetState(deviceID, payload)
		log.Printf("[ws] state update from %s", deviceID)

		// The only outbound push path: echo a wallpaper change back so the
		// device applies it immediately.
		if url, ok := payload["new_wallpaper"].(string); ok {
			push := types.WallpaperUpdate{Type: "wallpaper_update", URL: url}
			if err := conn.WriteJSON(push); err != nil {
				log.Printf("[ws] wallpaper push to %s failed: %v", deviceID, err)
			}
		}
	}
}
