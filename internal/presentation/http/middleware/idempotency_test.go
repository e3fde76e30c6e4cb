package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/entity"
)

type fakeIdempotencyRepo struct {
	stored map[string]*entity.IdempotencyKey
	saved  []*entity.IdempotencyKey
}

func (r *fakeIdempotencyRepo) GetByKey(_ context.Context, key string, _ uuid.UUID) (*entity.IdempotencyKey, error) {
	return r.stored[key], nil
}

func (r *fakeIdempotencyRepo) SaveResponse(_ context.Context, ikey *entity.IdempotencyKey) error {
	r.saved = append(r.saved, ikey)
	return nil
}

func (r *fakeIdempotencyRepo) DeleteExpired(_ context.Context) error { return nil }

func idempotencyRouter(repo *fakeIdempotencyRepo, userID uuid.UUID, handlerCalls *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
	})
	router.Use(Idempotency(IdempotencyConfig{Repo: repo}))
	router.POST("/orders", func(c *gin.Context) {
		*handlerCalls++
		c.JSON(http.StatusCreated, gin.H{"number": "PED-1"})
	})
	return router
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	repo := &fakeIdempotencyRepo{stored: map[string]*entity.IdempotencyKey{
		"abc": {
			Key:          "abc",
			UserID:       userID,
			ResponseCode: http.StatusCreated,
			ResponseBody: `{"number":"PED-0"}`,
		},
	}}

	handlerCalls := 0
	router := idempotencyRouter(repo, userID, &handlerCalls)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/orders", nil)
	req.Header.Set(IdempotencyKeyHeader, "abc")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.JSONEq(t, `{"number":"PED-0"}`, w.Body.String())
	require.Equal(t, "true", w.Header().Get("X-Idempotency-Replayed"))
	require.Zero(t, handlerCalls, "a replayed request must not settle again")
	require.Empty(t, repo.saved)
}

func TestIdempotencyStoresFirstResponse(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	repo := &fakeIdempotencyRepo{stored: map[string]*entity.IdempotencyKey{}}

	handlerCalls := 0
	router := idempotencyRouter(repo, userID, &handlerCalls)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/orders", nil)
	req.Header.Set(IdempotencyKeyHeader, "fresh")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, 1, handlerCalls)
	require.Len(t, repo.saved, 1)
	require.Equal(t, "fresh", repo.saved[0].Key)
	require.Equal(t, userID, repo.saved[0].UserID)
	require.Equal(t, "POST /orders", repo.saved[0].Endpoint)
	require.Equal(t, http.StatusCreated, repo.saved[0].ResponseCode)
	require.JSONEq(t, `{"number":"PED-1"}`, repo.saved[0].ResponseBody)
}

func TestIdempotencyWithoutKeyPassesThrough(t *testing.T) {
	t.Parallel()

	repo := &fakeIdempotencyRepo{stored: map[string]*entity.IdempotencyKey{}}
	handlerCalls := 0
	router := idempotencyRouter(repo, uuid.New(), &handlerCalls)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/orders", nil))

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, 1, handlerCalls)
	require.Empty(t, repo.saved)
}
