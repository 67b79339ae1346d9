package userservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestClient_GetUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/internal/users/7":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":7,"name":"Rahim","phone":"+8801700000000","role":"USER"}`))
		case "/internal/users/8":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second, nopLogger{})

	user, err := c.GetUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Rahim", user.Name)
	assert.Equal(t, "+8801700000000", user.Phone)

	_, err = c.GetUser(context.Background(), 8)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = c.GetUserWithGracefulDegradation(context.Background(), 9)
	assert.ErrorIs(t, err, ErrServiceDegraded)

	assert.Equal(t, "Rahim", c.DisplayName(context.Background(), 7))
	assert.Empty(t, c.DisplayName(context.Background(), 9))
}
