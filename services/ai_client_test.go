package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplete_ExtractsFirstCandidate(t *testing.T) {
	var gotKey string
	var gotReq generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		body, _ := io.ReadAll(r.Body)
		_ = sonic.Unmarshal(body, &gotReq)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"first"},{"text":"second"}]}},{"content":{"parts":[{"text":"other"}]}}]}`))
	}))
	defer srv.Close()

	client := NewGenerativeClient(srv.URL+"/v1beta/models/m:generateContent", "secret", time.Second, srv.Client(), nil)
	text, err := client.Complete(context.Background(), "hello")

	require.NoError(t, err)
	assert.Equal(t, "first", text)
	assert.Equal(t, "secret", gotKey)
	require.Len(t, gotReq.Contents, 1)
	assert.Equal(t, "hello", gotReq.Contents[0].Parts[0].Text)
}

func TestComplete_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"quota"}`))
	}))
	defer srv.Close()

	client := NewGenerativeClient(srv.URL, "k", time.Second, srv.Client(), nil)
	_, err := client.Complete(context.Background(), "hello")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAIUpstream)
	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusTooManyRequests, upstream.Status)
	assert.Equal(t, `{"error":"quota"}`, upstream.Body)
}

func TestComplete_MalformedResponses(t *testing.T) {
	bodies := map[string]string{
		"not json":      `<html>`,
		"no candidates": `{"candidates":[]}`,
		"no parts":      `{"candidates":[{"content":{"parts":[]}}]}`,
		"no text":       `{"candidates":[{"content":{"parts":[{"inlineData":{}}]}}]}`,
		"empty object":  `{}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			client := NewGenerativeClient(srv.URL, "k", time.Second, srv.Client(), nil)
			_, err := client.Complete(context.Background(), "hello")
			assert.ErrorIs(t, err, ErrAIResponseMalformed)
		})
	}
}

func TestComplete_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := NewGenerativeClient(srv.URL, "k", 50*time.Millisecond, srv.Client(), nil)
	_, err := client.Complete(context.Background(), "hello")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
