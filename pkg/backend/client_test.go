package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sromero1905/elearningfront/config"
)

type recordingObserver struct {
	calls []string
}

func (r *recordingObserver) ObserveUpstream(endpoint, outcome string, _ time.Duration) {
	r.calls = append(r.calls, endpoint+":"+outcome)
}

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *recordingObserver) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	obs := &recordingObserver{}
	c := NewClient(&config.UpstreamConfig{
		BaseURL:  srv.URL + "/api/",
		APIToken: "server-token",
		Timeout:  2 * time.Second,
	}, zap.NewNop(), obs)
	return c, obs
}

func TestLogin_Success(t *testing.T) {
	c, obs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/user-elearnings/login", r.URL.Path)
		assert.Equal(t, "Bearer server-token", r.Header.Get("Authorization"))

		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "ana@example.com", body["email"])

		_, _ = io.WriteString(w, `{"token":"abc","user":{"id":7,"nombre":"Ana"}}`)
	})

	res, err := c.Login(context.Background(), "ana@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "abc", res.Token)
	assert.JSONEq(t, `{"id":7,"nombre":"Ana"}`, string(res.User))
	assert.Equal(t, []string{"login:ok"}, obs.calls)
}

func TestLogin_Rejected(t *testing.T) {
	c, obs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"message":"Credenciales inválidas"}}`)
	})

	_, err := c.Login(context.Background(), "a@b.c", "x")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Credenciales inválidas", apiErr.Message)
	assert.Equal(t, []string{"login:rejected"}, obs.calls)
}

func TestLogin_InvalidJSON(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<html>oops</html>")
	})

	_, err := c.Login(context.Background(), "a@b.c", "x")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(&config.UpstreamConfig{BaseURL: url, Timeout: time.Second}, zap.NewNop(), nil)
	_, err := c.Course(context.Background(), "tok", 2)
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestClient_ContextCancelled(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Capsules(ctx, "tok", 2)
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestCourse_BearerAndNormalize(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/cursos/2", r.URL.Path)
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"data":{"id":2,"attributes":{"titulo":"Mediación","modulos":{"data":[{"id":1,"attributes":{"title":"M1","lecciones":{"data":[{"id":9,"attributes":{"title":"L1"}}]}}}]}}},"meta":{}}`)
	})

	raw, err := c.Course(context.Background(), "user-token", 2)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":2,"titulo":"Mediación","modulos":[{"id":1,"title":"M1","lecciones":[{"id":9,"title":"L1"}]}]}`, string(raw))
}

func TestCapsules_Query(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/custom-capsulas", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("cursoId"))
		_, _ = io.WriteString(w, `[{"id":1,"title":"Cápsula","link":"https://x"}]`)
	})

	raw, err := c.Capsules(context.Background(), "tok", 2)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"title":"Cápsula","link":"https://x"}]`, string(raw))
}

func TestChangePassword_MessageExtraction(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, float64(7), body["userId"])
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"Contraseña actual incorrecta"}`)
	})

	_, err := c.ChangePassword(context.Background(), "user-token", ChangePasswordRequest{
		CurrentPassword: "old", NewPassword: "newpassword", UserID: 7,
	})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Contraseña actual incorrecta", apiErr.Message)
}

func TestForgotPassword_EmptyBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	msg, err := c.ForgotPassword(context.Background(), "a@b.c")
	require.NoError(t, err)
	assert.Empty(t, msg)
}
