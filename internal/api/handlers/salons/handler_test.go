package salons

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/salons"
	"github.com/m04kA/SMC-SalonBooking/internal/service/salons/models"
)

// stubService реализует только нужные тестам методы
type stubService struct {
	SalonService

	created  *models.CreateSalonRequest
	createBy domain.Identity
	getErr   error
	deleted  int64
}

func (s *stubService) ListBookable(_ context.Context, search string) (*models.SalonListResponse, error) {
	return &models.SalonListResponse{Salons: []models.SalonResponse{{ID: 1, Name: "Glow " + search}}}, nil
}

func (s *stubService) Get(_ context.Context, id int64) (*models.SalonResponse, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return &models.SalonResponse{ID: id, Name: "Glow"}, nil
}

func (s *stubService) Create(_ context.Context, caller domain.Identity, req *models.CreateSalonRequest) (*models.SalonResponse, error) {
	s.created = req
	s.createBy = caller
	return &models.SalonResponse{ID: 11, OwnerID: caller.UserID, Name: req.Name}, nil
}

func (s *stubService) Delete(_ context.Context, caller domain.Identity, id int64) error {
	if !caller.IsAdmin() {
		return fmt.Errorf("%w: not admin", salons.ErrAccessDenied)
	}
	s.deleted = id
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRouter(svc SalonService) *mux.Router {
	h := NewHandler(svc, nopLogger{})
	auth := middleware.NewAuth("", nopLogger{})

	router := mux.NewRouter()
	router.HandleFunc("/salons", h.List).Methods(http.MethodGet)
	router.HandleFunc("/salons/{salonId}", h.Get).Methods(http.MethodGet)
	router.Handle("/salons", auth.Required(http.HandlerFunc(h.Create))).Methods(http.MethodPost)
	router.Handle("/admin/salons/{salonId}", auth.Required(http.HandlerFunc(h.Delete))).Methods(http.MethodDelete)
	return router
}

func do(router http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestList(t *testing.T) {
	rec := do(newRouter(&stubService{}), http.MethodGet, "/salons?search=spa", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body []models.SalonResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "Glow spa", body[0].Name)
}

func TestGet_NotFound(t *testing.T) {
	svc := &stubService{getErr: salons.ErrSalonNotFound}

	assert.Equal(t, http.StatusNotFound, do(newRouter(svc), http.MethodGet, "/salons/4", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(newRouter(svc), http.MethodGet, "/salons/0", "", nil).Code)
}

func TestCreate(t *testing.T) {
	svc := &stubService{}
	rec := do(newRouter(svc), http.MethodPost, "/salons",
		`{"name":"Glow","location":"Baku","description":"nails"}`,
		map[string]string{"X-User-ID": "3", "X-User-Role": "OWNER"})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Glow", svc.created.Name)
	assert.Equal(t, int64(3), svc.createBy.UserID)
	assert.Equal(t, domain.RoleOwner, svc.createBy.Role)

	rec = do(newRouter(svc), http.MethodPost, "/salons", `{"name":"Glow"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDelete_AdminOnly(t *testing.T) {
	svc := &stubService{}

	rec := do(newRouter(svc), http.MethodDelete, "/admin/salons/8", "", map[string]string{"X-User-ID": "3"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, svc.deleted)

	rec = do(newRouter(svc), http.MethodDelete, "/admin/salons/8", "", map[string]string{"X-User-ID": "1", "X-User-Role": "ADMIN"})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(8), svc.deleted)
}
