package ports

import (
	"context"

	"github.com/medley-labs/medley/internal/core/domain"
)

// BuildRepository persists completed playlist builds.
type BuildRepository interface {
	Record(ctx context.Context, rec domain.BuildRecord) error
	Recent(ctx context.Context, limit int) ([]domain.BuildRecord, error)
}
