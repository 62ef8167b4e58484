package http

import (
	"time"

	"github.com/MKhiriev/go-mapping-keeper/internal/crypto"
	"github.com/MKhiriev/go-mapping-keeper/internal/logger"
	"github.com/MKhiriev/go-mapping-keeper/models"
)

// AuthSettings configure the admin tokens.
type AuthSettings struct {
	SignKey  string
	Issuer   string
	Duration time.Duration
}

type Handler struct {
	admin     MappingAdmin
	verifier  crypto.PasswordVerifier
	auth      AuthSettings
	buildInfo models.AppBuildInfo

	logger *logger.Logger
}

func NewHandler(admin MappingAdmin, verifier crypto.PasswordVerifier, auth AuthSettings, buildInfo models.AppBuildInfo, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		admin:     admin,
		verifier:  verifier,
		auth:      auth,
		buildInfo: buildInfo,
		logger:    logger,
	}
}
