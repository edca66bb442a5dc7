package services

import (
	"context"
	"testing"
	"time"

	"campuswell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"
)

func TestToggleLikeRoundTrip(t *testing.T) {
	gdb := setupDB(t)
	m := NewModerationService(gdb, 0, "")
	e := NewEngagementService(gdb, 0)
	author := createUser(t, gdb, "dana", false)
	fan := createUser(t, gdb, "felix", false)

	post, err := m.SubmitPost(context.Background(), author, "like me", false)
	require.NoError(t, err)

	liked, count, err := e.ToggleLike(context.Background(), fan, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(1), count)

	liked, count, err = e.ToggleLike(context.Background(), fan, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, int64(0), count)
}

func TestToggleLikeUnknownPost(t *testing.T) {
	gdb := setupDB(t)
	e := NewEngagementService(gdb, 0)
	fan := createUser(t, gdb, "felix", false)

	_, _, err := e.ToggleLike(context.Background(), fan, 424242)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLikeUniqueIndexGuardsRaces(t *testing.T) {
	gdb := setupDB(t)
	m := NewModerationService(gdb, 0, "")
	e := NewEngagementService(gdb, 0)
	author := createUser(t, gdb, "dana", false)
	fan := createUser(t, gdb, "felix", false)

	post, err := m.SubmitPost(context.Background(), author, "race me", false)
	require.NoError(t, err)

	_, _, err = e.ToggleLike(context.Background(), fan, post.ID)
	require.NoError(t, err)

	// A racing duplicate insert lands on the unique index and affects no
	// rows, which is exactly what the toggle's insert path relies on.
	dup := models.Like{UserID: fan.ID, PostID: post.ID}
	res := gdb.Clauses(clause.OnConflict{DoNothing: true}).Create(&dup)
	require.NoError(t, res.Error)
	assert.Equal(t, int64(0), res.RowsAffected)

	count, err := e.CountLikes(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestAddCommentValidation(t *testing.T) {
	gdb := setupDB(t)
	m := NewModerationService(gdb, 0, "")
	e := NewEngagementService(gdb, 0)
	author := createUser(t, gdb, "dana", false)

	post, err := m.SubmitPost(context.Background(), author, "talk to me", false)
	require.NoError(t, err)

	_, err = e.AddComment(context.Background(), author, post.ID, "  ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = e.AddComment(context.Background(), author, 424242, "hello?")
	assert.ErrorIs(t, err, ErrNotFound)

	comment, err := e.AddComment(context.Background(), author, post.ID, "first!")
	require.NoError(t, err)
	assert.Equal(t, post.ID, comment.PostID)
}

func TestListCommentsOldestFirst(t *testing.T) {
	gdb := setupDB(t)
	m := NewModerationService(gdb, 0, "")
	e := NewEngagementService(gdb, 0)
	author := createUser(t, gdb, "dana", false)
	fan := createUser(t, gdb, "felix", false)

	post, err := m.SubmitPost(context.Background(), author, "thread", false)
	require.NoError(t, err)

	for i, text := range []string{"one", "two", "three"} {
		c, err := e.AddComment(context.Background(), fan, post.ID, text)
		require.NoError(t, err)
		// Space the timestamps out so ordering is deterministic.
		gdb.Model(&models.Comment{}).Where("id = ?", c.ID).
			Update("created_at", c.CreatedAt.Add(time.Duration(i)*time.Second))
	}

	views, err := e.ListComments(context.Background(), post.ID)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, "one", views[0].Content)
	assert.Equal(t, "three", views[2].Content)
	assert.Equal(t, "felix", views[0].AuthorName)
}

func TestCountsAreIndependent(t *testing.T) {
	gdb := setupDB(t)
	m := NewModerationService(gdb, 0, "")
	e := NewEngagementService(gdb, 0)
	author := createUser(t, gdb, "dana", false)
	fan := createUser(t, gdb, "felix", false)

	post, err := m.SubmitPost(context.Background(), author, "numbers", false)
	require.NoError(t, err)

	_, _, err = e.ToggleLike(context.Background(), fan, post.ID)
	require.NoError(t, err)
	_, err = e.AddComment(context.Background(), fan, post.ID, "a")
	require.NoError(t, err)
	_, err = e.AddComment(context.Background(), fan, post.ID, "b")
	require.NoError(t, err)

	likes, err := e.CountLikes(context.Background(), post.ID)
	require.NoError(t, err)
	comments, err := e.CountComments(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), likes)
	assert.Equal(t, int64(2), comments)
}
