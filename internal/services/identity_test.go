package services

import (
	"context"
	"testing"

	"campuswell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCreatesUserOnce(t *testing.T) {
	gdb := setupDB(t)
	s := NewIdentityService(gdb, 0)

	first, err := s.Resolve(context.Background(), "amira@example.edu", "amira", "Amira Hassan")
	require.NoError(t, err)
	assert.Equal(t, "amira", first.Username)
	assert.Equal(t, "Amira Hassan", first.FullName)

	second, err := s.Resolve(context.Background(), "amira@example.edu", "amira", "Amira Hassan")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	gdb.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestResolveRequiresSomeIdentity(t *testing.T) {
	gdb := setupDB(t)
	s := NewIdentityService(gdb, 0)

	_, err := s.Resolve(context.Background(), "", "", "Nobody")
	assert.ErrorIs(t, err, ErrIdentity)
}

func TestResolveByUsernameDoesNotCreate(t *testing.T) {
	gdb := setupDB(t)
	s := NewIdentityService(gdb, 0)

	existing := createUser(t, gdb, "noemail", false)

	found, err := s.Resolve(context.Background(), "", "noemail", "")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, found.ID)

	_, err = s.Resolve(context.Background(), "", "stranger", "")
	assert.ErrorIs(t, err, ErrNotFound)

	var count int64
	gdb.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestResolveDefaultsUsernameToEmail(t *testing.T) {
	gdb := setupDB(t)
	s := NewIdentityService(gdb, 0)

	user, err := s.Resolve(context.Background(), "fresh@example.edu", "", "")
	require.NoError(t, err)
	assert.Equal(t, "fresh@example.edu", user.Username)
}
