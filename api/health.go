package api

// Health statuses.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"

	ServiceUp   = "up"
	ServiceDown = "down"
)

// HealthServices reports the state of each probed dependency.
type HealthServices struct {
	ImageEngine string `json:"imageEngine"`
	FileSystem  string `json:"fileSystem"`
}

// HealthResponse is the body of GET health.
type HealthResponse struct {
	Status    string         `json:"status"`
	Services  HealthServices `json:"services"`
	Timestamp string         `json:"timestamp"`
	Version   string         `json:"version"`
}
