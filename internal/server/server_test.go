package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/graph-gophers/graphql-go"
	"github.com/labstack/echo/v4"
	"github.com/safar/teebay/internal/auth"
	"github.com/safar/teebay/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type whoamiRoot struct{}

func (whoamiRoot) Whoami(ctx context.Context) *int32 {
	id, ok := auth.UserID(ctx)
	if !ok {
		return nil
	}
	v := int32(id)
	return &v
}

func newTestServer(t *testing.T) (*Server, *auth.Issuer) {
	t.Helper()

	schema := graphql.MustParseSchema(`schema { query: Query } type Query { whoami: Int }`, &whoamiRoot{})
	issuer := auth.NewIssuer("test-secret", time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := config.ServerConfig{Port: "0", ShutdownTimeout: time.Second, CORSAllowOrigins: []string{"*"}}
	return New(cfg, schema, issuer, logger), issuer
}

func do(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func whoami(t *testing.T, rec *httptest.ResponseRecorder) *int32 {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct{ Whoami *int32 }
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Data.Whoami
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	_, err := time.Parse(time.RFC3339, body["timestamp"])
	assert.NoError(t, err)
}

func TestGraphQLIdentity(t *testing.T) {
	s, issuer := newTestServer(t)

	token, err := issuer.Issue(17)
	require.NoError(t, err)

	post := func(authHeader string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query":"{ whoami }"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		if authHeader != "" {
			req.Header.Set(echo.HeaderAuthorization, authHeader)
		}
		return do(t, s, req)
	}

	id := whoami(t, post("Bearer "+token))
	require.NotNil(t, id)
	assert.Equal(t, int32(17), *id)

	assert.Nil(t, whoami(t, post("")))
	assert.Nil(t, whoami(t, post("Bearer not-a-token")))
}

func TestGraphQLOverGet(t *testing.T) {
	s, _ := newTestServer(t)

	q := url.Values{"query": {"{ whoami }"}}
	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/graphql?"+q.Encode(), nil))
	assert.Nil(t, whoami(t, rec))
}

func TestGraphQLBadRequest(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`not json`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, httptest.NewRequest(http.MethodGet, "/graphql?query=%7Bwhoami%7D&variables=oops", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRunStopsOnCancel(t *testing.T) {
	s, _ := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
