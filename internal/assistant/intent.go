package assistant

import (
	"encoding/json"
	"strings"
)

// Action is the fixed set of things the assistant can do with a message.
// Anything the classifier produces outside this set resolves to ActionChat.
type Action string

const (
	ActionGetTasks    Action = "get_google_tasks"
	ActionGetCalendar Action = "get_google_calendar"
	ActionChat        Action = "chat"
)

type classifiedIntent struct {
	Action string `json:"action"`
}

// parseIntent turns raw model output into an Action. Models wrap JSON in prose
// often enough that we extract the outermost object before giving up; any
// failure is the explicit Unclassified -> Chat fallback, not an error.
func parseIntent(raw string) Action {
	var ci classifiedIntent
	if err := json.Unmarshal([]byte(raw), &ci); err != nil {
		first := strings.IndexByte(raw, '{')
		last := strings.LastIndexByte(raw, '}')
		if first < 0 || last <= first {
			return ActionChat
		}
		if err := json.Unmarshal([]byte(raw[first:last+1]), &ci); err != nil {
			return ActionChat
		}
	}
	switch Action(strings.TrimSpace(ci.Action)) {
	case ActionGetTasks:
		return ActionGetTasks
	case ActionGetCalendar:
		return ActionGetCalendar
	default:
		return ActionChat
	}
}
