package types

type ChatRequest struct {
	Data string `json:"data"`
}

type ChatResponse struct {
	Data string `json:"data"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// UserResponse wraps the raw Google profile for GET /user.
type UserResponse struct {
	Data map[string]any `json:"data"`
}

// WallpaperUpdate is the only outbound push shape on the device channel.
type WallpaperUpdate struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

type MemorySetRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type MemoryResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
