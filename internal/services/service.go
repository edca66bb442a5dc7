package services

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// DefaultQueryTimeout bounds every persistence call so a dead backend
// surfaces as ErrBackendUnavailable instead of a hung request.
const DefaultQueryTimeout = 5 * time.Second

// scoped returns a session bound to a deadline derived from ctx.
func scoped(ctx context.Context, db *gorm.DB, timeout time.Duration) (*gorm.DB, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return db.WithContext(ctx), cancel
}
