package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type MockUseCase struct{ mock.Mock }

func (m *MockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createBooking.Response), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRouter(uc CreateBookingUseCase) *mux.Router {
	router := mux.NewRouter()
	auth := middleware.NewAuth("", nopLogger{})
	router.Handle("/api/v1/bookings", auth.Required(http.HandlerFunc(NewHandler(uc, nopLogger{}).Handle))).
		Methods(http.MethodPost)
	return router
}

func post(router http.Handler, body string, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const validBody = `{"salonId":1,"serviceIds":[3,4],"date":"2030-01-15","timeSlot":"02:30 PM"}`

func TestHandle_Created(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *createBooking.Request) bool {
		return r.UserID == 7 && r.SalonID == 1 && r.TimeLabel.String() == "02:30 PM" &&
			r.Date.Format(domain.DateFormat) == "2030-01-15"
	})).Return(&createBooking.Response{
		ID:         10,
		UserID:     7,
		SalonID:    1,
		ServiceIDs: []int64{3, 4},
		Date:       time.Date(2030, 1, 15, 0, 0, 0, 0, time.UTC),
		TimeLabel:  types.MustTimeLabel("02:30 PM"),
		Status:     "PENDING",
		TotalPrice: decimal.NewFromInt(750),
	}, nil)

	rec := post(newRouter(uc), validBody, "7")
	require.Equal(t, http.StatusCreated, rec.Code)

	var body BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(10), body.ID)
	assert.Equal(t, "02:30 PM", body.TimeSlot)
	assert.True(t, body.TotalPrice.Equal(decimal.NewFromInt(750)))
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{createBooking.ErrDuplicateBooking, http.StatusConflict, handlers.CodeDuplicateBooking},
		{createBooking.ErrSalonNotBookable, http.StatusConflict, handlers.CodeSalonNotBookable},
		{createBooking.ErrTooLateToBook, http.StatusBadRequest, handlers.CodeTooLateToBook},
		{createBooking.ErrSalonNotFound, http.StatusNotFound, ""},
		{createBooking.ErrServiceNotFound, http.StatusNotFound, ""},
		{createBooking.ErrInvalidDate, http.StatusBadRequest, ""},
		{fmt.Errorf("%w: db down", createBooking.ErrInternal), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := new(MockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := post(newRouter(uc), validBody, "7")
			assert.Equal(t, tt.status, rec.Code)

			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

func TestHandle_BadRequests(t *testing.T) {
	uc := new(MockUseCase)
	router := newRouter(uc)

	assert.Equal(t, http.StatusUnauthorized, post(router, validBody, "").Code)
	assert.Equal(t, http.StatusBadRequest, post(router, `{"salonId":`, "7").Code)
	assert.Equal(t, http.StatusBadRequest, post(router, `{"salonId":1,"date":"15.01.2030","timeSlot":"02:30 PM"}`, "7").Code)
	assert.Equal(t, http.StatusBadRequest, post(router, `{"salonId":1,"date":"2030-01-15","timeSlot":"14:30"}`, "7").Code)

	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestHandle_ParseErrorMessages(t *testing.T) {
	router := newRouter(new(MockUseCase))

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"date", `{"salonId":1,"date":"15.01.2030","timeSlot":"02:30 PM"}`, msgInvalidDate},
		{"time slot", `{"salonId":1,"date":"2030-01-15","timeSlot":"14:30"}`, msgInvalidTimeSlot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(router, tt.body, "7")
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestToUseCaseRequest_ParseErrors(t *testing.T) {
	_, err := (&CreateBookingRequest{Date: "2030-13-40", TimeSlot: "02:30 PM"}).ToUseCaseRequest(7)
	assert.ErrorIs(t, err, errBadDate)
	assert.NotErrorIs(t, err, errBadTimeSlot)

	_, err = (&CreateBookingRequest{Date: "2030-01-15", TimeSlot: "25:00 PM"}).ToUseCaseRequest(7)
	assert.ErrorIs(t, err, errBadTimeSlot)

	req, err := (&CreateBookingRequest{SalonID: 1, Date: "2030-01-15", TimeSlot: "02:30 PM"}).ToUseCaseRequest(7)
	require.NoError(t, err)
	assert.Equal(t, types.MustTimeLabel("02:30 PM"), req.TimeLabel)
}
