package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"campuswell/internal/config"
	"campuswell/internal/db"
	"campuswell/internal/middleware"
	"campuswell/internal/models"
	"campuswell/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:router_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	db.DB = gdb

	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("campuswell_session", store))
	r.Use(middleware.LoadUser())

	RegisterRoutes(r, config.Load())
	return r
}

// request sends a JSON request, carrying the session cookie when given.
func request(t *testing.T, r *gin.Engine, method, path string, body interface{}, sessionCookie string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if sessionCookie != "" {
		req.Header.Set("Cookie", sessionCookie)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func login(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	w, resp := request(t, r, http.MethodPost, "/login", gin.H{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, "login failed: %v", resp)
	c := w.Header().Get("Set-Cookie")
	require.NotEmpty(t, c)
	return c
}

func seedAdmin(t *testing.T, username, password string) {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	require.NoError(t, db.DB.Create(&models.User{
		Username: username,
		Email:    username + "@example.edu",
		Password: hash,
		IsAdmin:  true,
	}).Error)
}

func TestModerationFlowOverHTTP(t *testing.T) {
	r := setupServer(t)
	seedAdmin(t, "root", "rootpass")

	// Signup and login a regular member.
	w, _ := request(t, r, http.MethodPost, "/signup", gin.H{
		"username": "alice",
		"email":    "alice@example.edu",
		"password": "hunter22",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	alice := login(t, r, "alice@example.edu", "hunter22")
	admin := login(t, r, "root@example.edu", "rootpass")

	// Anonymous submission lands in the moderation queue.
	w, resp := request(t, r, http.MethodPost, "/api/posts", gin.H{
		"content":      "hello campus",
		"is_anonymous": true,
	}, alice)
	require.Equal(t, http.StatusOK, w.Code)
	post := resp["post"].(map[string]interface{})
	assert.Equal(t, "pending", post["status"])
	assert.Equal(t, "Anonymous", post["author_name"])
	assert.NotContains(t, post, "user_id")
	postID := uint(post["id"].(float64))

	// Public feed is still empty.
	w, resp = request(t, r, http.MethodGet, "/api/posts", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp["posts"])

	// A member cannot moderate.
	w, _ = request(t, r, http.MethodPost, fmt.Sprintf("/api/admin/posts/%d/status", postID), gin.H{
		"status": "approved",
	}, alice)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The admin can. The response keeps the author withheld too.
	w, resp = request(t, r, http.MethodPost, fmt.Sprintf("/api/admin/posts/%d/status", postID), gin.H{
		"status": "approved",
	}, admin)
	require.Equal(t, http.StatusOK, w.Code)
	moderated := resp["post"].(map[string]interface{})
	assert.Equal(t, "approved", moderated["status"])
	assert.Equal(t, "Anonymous", moderated["author_name"])
	assert.NotContains(t, moderated, "user_id")

	// The approved post shows up with its author withheld.
	w, resp = request(t, r, http.MethodGet, "/api/posts", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	posts := resp["posts"].([]interface{})
	require.Len(t, posts, 1)
	view := posts[0].(map[string]interface{})
	assert.Equal(t, "Anonymous", view["author_name"])

	// Like toggle round-trips.
	w, resp = request(t, r, http.MethodPost, fmt.Sprintf("/api/posts/%d/like", postID), nil, alice)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["liked"])
	assert.Equal(t, float64(1), resp["likes"])

	w, resp = request(t, r, http.MethodPost, fmt.Sprintf("/api/posts/%d/like", postID), nil, alice)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, resp["liked"])
	assert.Equal(t, float64(0), resp["likes"])

	// Unauthenticated writes are rejected.
	w, _ = request(t, r, http.MethodPost, "/api/posts", gin.H{"content": "nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSignupSeparatesConflictFromBackendFailure(t *testing.T) {
	r := setupServer(t)

	signup := gin.H{
		"username": "alice",
		"email":    "alice@example.edu",
		"password": "hunter22",
	}
	w, _ := request(t, r, http.MethodPost, "/signup", signup, "")
	require.Equal(t, http.StatusOK, w.Code)

	// A taken email is a conflict.
	w, _ = request(t, r, http.MethodPost, "/signup", signup, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	// A store failure is not; it must surface as a server-side error.
	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w, _ = request(t, r, http.MethodPost, "/signup", gin.H{
		"username": "bob",
		"email":    "bob@example.edu",
		"password": "hunter22",
	}, "")
	assert.NotEqual(t, http.StatusConflict, w.Code)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestJournalIsOwnerScoped(t *testing.T) {
	r := setupServer(t)

	for _, u := range []string{"alice", "bob"} {
		w, _ := request(t, r, http.MethodPost, "/signup", gin.H{
			"username": u,
			"email":    u + "@example.edu",
			"password": "hunter22",
		}, "")
		require.Equal(t, http.StatusOK, w.Code)
	}
	alice := login(t, r, "alice@example.edu", "hunter22")
	bob := login(t, r, "bob@example.edu", "hunter22")

	w, resp := request(t, r, http.MethodPost, "/api/journals", gin.H{
		"content": "rough week",
	}, alice)
	require.Equal(t, http.StatusOK, w.Code)
	journal := resp["journal"].(map[string]interface{})
	assert.Equal(t, "Untitled", journal["title"])
	journalID := int(journal["id"].(float64))

	// Bob sees an empty list and cannot touch Alice's entry.
	_, resp = request(t, r, http.MethodGet, "/api/journals", nil, bob)
	assert.Empty(t, resp["journals"])

	w, _ = request(t, r, http.MethodDelete, fmt.Sprintf("/api/journals/%d", journalID), nil, bob)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = request(t, r, http.MethodDelete, fmt.Sprintf("/api/journals/%d", journalID), nil, alice)
	assert.Equal(t, http.StatusOK, w.Code)
}
