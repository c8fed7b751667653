package api

// --- API Response Envelope ---

type apiResponse[T any] struct {
	Data  T       `json:"data"`
	Error *apiErr `json:"error,omitempty"`
}

type apiErr struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthStatus is the payload of /api/health.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// updateResult is the payload some servers return from PATCH instead of the record.
type updateResult struct {
	Updated *bool `json:"updated"`
}
