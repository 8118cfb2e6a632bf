package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

// MaxStorageBytes is the per-user storage limit.
const MaxStorageBytes int64 = 50 * 1024 * 1024

type quotaEnforcer struct {
	attachments store.AttachmentStore
	limit       int64
	logger      *logger.Logger
}

func NewQuotaEnforcer(attachments store.AttachmentStore, logger *logger.Logger) QuotaEnforcer {
	return &quotaEnforcer{
		attachments: attachments,
		limit:       MaxStorageBytes,
		logger:      logger,
	}
}

// CheckAdd returns ErrStorageQuotaExceeded when incomingSize more bytes would
// take username over the limit. Reaching the limit exactly is allowed.
func (q *quotaEnforcer) CheckAdd(ctx context.Context, username string, incomingSize int64) error {
	used, err := q.attachments.Usage(ctx, username)
	if err != nil {
		return fmt.Errorf("error computing storage usage: %w", err)
	}

	if used+incomingSize > q.limit {
		logger.FromContext(ctx).Warn().
			Str("user", username).
			Int64("used", used).
			Int64("incoming", incomingSize).
			Int64("limit", q.limit).
			Msg("storage quota exceeded")
		return ErrStorageQuotaExceeded
	}

	return nil
}

func (q *quotaEnforcer) Usage(ctx context.Context, username string) (models.StorageUsage, error) {
	used, err := q.attachments.Usage(ctx, username)
	if err != nil {
		return models.StorageUsage{}, fmt.Errorf("error computing storage usage: %w", err)
	}

	return newStorageUsage(used, q.limit), nil
}

func newStorageUsage(used, limit int64) models.StorageUsage {
	remaining := max(limit-used, 0)

	return models.StorageUsage{
		Used:         used,
		Limit:        limit,
		Remaining:    remaining,
		UsedStr:      utils.FormatBytes(used),
		RemainingStr: utils.FormatBytes(remaining),
	}
}
