package service

import (
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
)

type Services struct {
	AuthService    AuthService
	NoteService    NoteService
	AdminService   AdminService
	AppInfoService AppInfoService
}

// NewServices wires every service over storages. NoteService and
// AdminService share one set of per-user locks.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	locks := NewUserLocks()
	quota := NewQuotaEnforcer(storages.AttachmentStore, logger)

	appInfoService, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	return &Services{
		AuthService:    NewAuthService(storages.UserStore, cfg.App, logger),
		NoteService:    NewNoteService(storages.NoteStore, storages.AttachmentStore, quota, locks, logger),
		AdminService:   NewAdminService(storages.UserStore, quota, locks, cfg.App.AdminLogin, logger),
		AppInfoService: appInfoService,
	}, nil
}
