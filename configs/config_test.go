package configs

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "MONGO_URI", "AI_TIMEOUT", "REDIS_ADDR", "DEMO_USER_ID", "DEBUG", "CONSUL_ADDRESS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, ":4000", cfg.ListenAddr())
	assert.Equal(t, 4000, cfg.PortNumber())
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, 30*time.Second, cfg.AITimeout)
	assert.Equal(t, defaultAIAPIURL, cfg.AIAPIURL)
	assert.Equal(t, "user123", cfg.DemoUserID)
	assert.Empty(t, cfg.RedisAddr)
	assert.False(t, cfg.Debug)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("AI_TIMEOUT", "2s")
	t.Setenv("BOARD_CACHE_TTL", "not-a-duration")
	t.Setenv("DEBUG", "true")
	t.Setenv("DEMO_USER_ID", "alice")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.ListenAddr())
	assert.Equal(t, 2*time.Second, cfg.AITimeout)
	assert.Equal(t, 5*time.Minute, cfg.BoardCacheTTL)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "alice", cfg.DemoUserID)
}

func TestRegisterService(t *testing.T) {
	var got ConsulService
	var method, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = sonic.Unmarshal(body, &got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	service := NewConsulService("aidea-server", Config{Port: "4000", ServiceHost: "board.local"})
	err := RegisterService(context.Background(), srv.Client(), srv.URL+"/", service)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/v1/agent/service/register", path)
	assert.Equal(t, "aidea-server", got.Name)
	assert.Equal(t, 4000, got.Port)
	assert.Equal(t, "http://board.local:4000/health", got.Check["HTTP"])
}

func TestRegisterService_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := RegisterService(context.Background(), srv.Client(), srv.URL, NewConsulService("x", Config{Port: "1"}))
	assert.Error(t, err)
}
