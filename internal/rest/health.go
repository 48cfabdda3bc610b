package rest

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/rasterform/rasterd/api"
)

// EngineProber is the slice of the native engine the health check needs.
type EngineProber interface {
	Probe() error
}

// HealthHandler reports service health: unhealthy when the image engine
// fails its probe, degraded when the engine is up but the filesystem write
// probe fails.
type HealthHandler struct {
	engine  EngineProber
	tempDir string
	version string
}

func NewHealthHandler(engine EngineProber, tempDir string, version string) *HealthHandler {
	return &HealthHandler{engine: engine, tempDir: tempDir, version: version}
}

// GetHealth handles GET /health.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	resp := api.HealthResponse{
		Status: api.StatusHealthy,
		Services: api.HealthServices{
			ImageEngine: api.ServiceUp,
			FileSystem:  api.ServiceUp,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
	}
	status := http.StatusOK

	if err := h.probeFileSystem(); err != nil {
		log.Error().Err(err).Str("tempDir", h.tempDir).Msg("Filesystem probe failed")
		resp.Services.FileSystem = api.ServiceDown
		resp.Status = api.StatusDegraded
	}

	if err := h.engine.Probe(); err != nil {
		log.Error().Err(err).Msg("Image engine probe failed")
		resp.Services.ImageEngine = api.ServiceDown
		resp.Status = api.StatusUnhealthy
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, resp)
}

// probeFileSystem verifies the temp dir is writable by creating and
// removing a throwaway file.
func (h *HealthHandler) probeFileSystem() error {
	f, err := os.CreateTemp(h.tempDir, ".rasterd-health-*")
	if err != nil {
		return err
	}
	name := f.Name()
	if _, err := f.Write([]byte("ok")); err != nil {
		f.Close()
		os.Remove(name)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(name)
		return err
	}
	return os.Remove(name)
}
