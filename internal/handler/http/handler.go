package http

import (
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
)

// multipartMemory is how much of a multipart form is kept in memory before
// file parts spill to disk.
const multipartMemory = 8 << 20

type Handler struct {
	services *service.Services

	// maxUploadSize caps the request body of note uploads.
	maxUploadSize int64

	// requestTimeout bounds the context of every request.
	requestTimeout time.Duration

	// authLimiter throttles register and login per client address; nil
	// when disabled.
	authLimiter *rateLimiter

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	h := &Handler{
		services:       services,
		maxUploadSize:  cfg.MaxUploadSize,
		requestTimeout: cfg.RequestTimeout,
		logger:         logger,
	}
	if cfg.AuthRateLimit > 0 {
		h.authLimiter = newRateLimiter(cfg.AuthRateLimit, time.Minute, max(cfg.AuthRateBurst, 1))
	}

	logger.Info().Msg("http handler created")
	return h
}
