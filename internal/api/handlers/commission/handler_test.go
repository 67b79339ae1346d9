package commission

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/commission"
)

type stubService struct{}

func (stubService) GetStatus(_ context.Context, caller domain.Identity, ownerID int64) (domain.CommissionStatus, error) {
	if caller.UserID != ownerID && !caller.IsAdmin() {
		return domain.CommissionStatus{}, fmt.Errorf("%w: foreign owner", commission.ErrAccessDenied)
	}
	return domain.EvaluateCommission(decimal.NewFromInt(1000), decimal.NewFromInt(50), 12), nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func get(path, userID string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	auth := middleware.NewAuth("", nopLogger{})
	router.Handle("/owners/{ownerId}/commission", auth.Required(http.HandlerFunc(NewHandler(stubService{}, nopLogger{}).Handle)))

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("X-User-ID", userID)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	rec := get("/owners/3/commission", "3")
	require.Equal(t, http.StatusOK, rec.Code)

	var body StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Debt.Equal(decimal.NewFromInt(50)))
	assert.True(t, body.IsDue)
	assert.False(t, body.IsSuspended)
}

func TestHandle_Forbidden(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, get("/owners/3/commission", "4").Code)
	assert.Equal(t, http.StatusBadRequest, get("/owners/x/commission", "4").Code)
}
