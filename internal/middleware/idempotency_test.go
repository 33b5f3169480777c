package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

const (
	testCacheKey = "idemp:/attendance/time-in:7:key-1"
	testLockKey  = testCacheKey + ":lock"
)

func newIdempotencyRouter(t *testing.T, calls *int) (*gin.Engine, redismock.ClientMock) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rdb, mock := redismock.NewClientMock()

	r := gin.New()
	r.POST("/attendance/time-in", func(c *gin.Context) {
		c.Set("user_id", "7")
		c.Next()
	}, Idempotency(rdb), func(c *gin.Context) {
		*calls++
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})
	return r, mock
}

func postWithKey(r *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/attendance/time-in", nil)
	req.Header.Set("Idempotency-Key", "key-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency_FirstRequestIsCached(t *testing.T) {
	calls := 0
	r, mock := newIdempotencyRouter(t, &calls)

	payload, _ := json.Marshal(cachedResponse{Status: http.StatusCreated, Body: json.RawMessage(`{"ok":true}`)})

	mock.ExpectGet(testCacheKey).RedisNil()
	mock.ExpectSetNX(testLockKey, "locked", idempotencyLockTTL).SetVal(true)
	mock.ExpectSet(testCacheKey, payload, idempotencyTTL).SetVal("OK")
	mock.ExpectDel(testLockKey).SetVal(1)

	w := postWithKey(r)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_Replay(t *testing.T) {
	calls := 0
	r, mock := newIdempotencyRouter(t, &calls)

	payload, _ := json.Marshal(cachedResponse{Status: http.StatusCreated, Body: json.RawMessage(`{"ok":true}`)})
	mock.ExpectGet(testCacheKey).SetVal(string(payload))

	w := postWithKey(r)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	assert.Equal(t, 0, calls)
}

func TestIdempotency_InFlight(t *testing.T) {
	calls := 0
	r, mock := newIdempotencyRouter(t, &calls)

	mock.ExpectGet(testCacheKey).RedisNil()
	mock.ExpectSetNX(testLockKey, "locked", idempotencyLockTTL).SetVal(false)

	w := postWithKey(r)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "PROCESSING")
	assert.Equal(t, 0, calls)
}

func TestIdempotency_NoKeyPassesThrough(t *testing.T) {
	calls := 0
	r, mock := newIdempotencyRouter(t, &calls)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/attendance/time-in", nil))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}
