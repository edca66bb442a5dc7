package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"campuswell/internal/db"
	"campuswell/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// setupDB opens a fresh in-memory database per test.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	// The feed cache is process-global; keep tests from reading each
	// other's pages.
	invalidateFeedCache()

	return gdb
}

func createUser(t *testing.T, gdb *gorm.DB, username string, admin bool) *models.User {
	t.Helper()

	user := models.User{
		Username: username,
		Email:    username + "@example.edu",
		Password: "x",
		IsAdmin:  admin,
	}
	require.NoError(t, gdb.Create(&user).Error)
	return &user
}
