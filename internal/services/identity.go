package services

import (
	"context"
	"fmt"
	"time"

	"campuswell/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IdentityService maps an externally resolved session identity onto the
// canonical User row, creating one lazily on first contact. Email is the
// canonical key.
type IdentityService struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewIdentityService(gdb *gorm.DB, timeout time.Duration) *IdentityService {
	return &IdentityService{db: gdb, timeout: timeout}
}

// Resolve returns the User for the given session triple, creating it if no
// user with that email exists yet. Safe under concurrent first-time logins:
// the insert is guarded by the email unique index, never check-then-insert.
func (s *IdentityService) Resolve(ctx context.Context, email, username, fullName string) (*models.User, error) {
	if email == "" && username == "" {
		return nil, fmt.Errorf("%w: session carries neither email nor username", ErrIdentity)
	}

	gdb, cancel := scoped(ctx, s.db, s.timeout)
	defer cancel()

	// Without an email we can only look up, not create.
	if email == "" {
		var user models.User
		if err := gdb.Where("username = ?", username).First(&user).Error; err != nil {
			return nil, storeErr(err)
		}
		return &user, nil
	}

	user := models.User{
		Username: username,
		Email:    email,
		FullName: fullName,
	}
	if user.Username == "" {
		user.Username = email
	}
	res := gdb.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&user)
	if res.Error != nil {
		return nil, storeErr(res.Error)
	}
	if res.RowsAffected == 1 {
		return &user, nil
	}

	// Conflict: the row already existed (or a concurrent login created it).
	var existing models.User
	if err := gdb.Where("email = ?", email).First(&existing).Error; err != nil {
		return nil, storeErr(err)
	}
	return &existing, nil
}
