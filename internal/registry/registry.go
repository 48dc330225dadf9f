package registry

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Registry tracks live device connections and each device's last-reported
// state. Both maps are keyed by device_id and guarded by one mutex; a state
// entry deliberately outlives its connection.
type Registry struct {
	mu     sync.Mutex
	conns  map[string]*websocket.Conn
	states map[string]map[string]any
}

func New() *Registry {
	return &Registry{
		conns:  make(map[string]*websocket.Conn),
		states: make(map[string]map[string]any),
	}
}

// Register stores the connection for a device id. A reconnect under the same
// id wins; the previous socket is orphaned from the registry but not closed.
func (r *Registry) Register(id string, conn *websocket.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[id] = conn
}

// Unregister removes the connection entry only if it still belongs to conn,
// so a replaced connection's deferred cleanup cannot evict its successor.
// State is untouched.
func (r *Registry) Unregister(id string, conn *websocket.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conns[id] == conn {
		delete(r.conns, id)
	}
}

// SetState overwrites the device's state wholesale. No merge, no history.
func (r *Registry) SetState(id string, state map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[id] = state
}

// State returns a copy of the device's last-reported state.
func (r *Registry) State(id string) (map[string]any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.states[id]
	if !ok {
		return nil, false
	}
	out := make(map[string]any, len(st))
	for k, v := range st {
		out[k] = v
	}
	return out, true
}

// Connection returns the live connection for a device id, if any.
func (r *Registry) Connection(id string) (*websocket.Conn, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	conn, ok := r.conns[id]
	return conn, ok
}

// ConnectedIDs lists currently registered device ids.
func (r *Registry) ConnectedIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.conns))
	for id := range r.conns {
		ids = append(ids, id)
	}
	return ids
}
