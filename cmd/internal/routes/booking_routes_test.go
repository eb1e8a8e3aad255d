package routes

import (
	"context"
	"net/http"
	"testing"

	"clientflow/cmd/internal/service"
	"clientflow/cmd/internal/utils/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBookingService struct {
	booking  *service.BookingResponse
	bookings []*service.BookingResponse
	err      apierror.ErrorResponse

	lastSub string
}

func (s *stubBookingService) CreateBooking(_ context.Context, _ *service.BookingRequest, sub string) (*service.BookingResponse, apierror.ErrorResponse) {
	s.lastSub = sub
	return s.booking, s.err
}

func (s *stubBookingService) GetBookings(_ context.Context, sub string) ([]*service.BookingResponse, apierror.ErrorResponse) {
	s.lastSub = sub
	return s.bookings, s.err
}

func TestBookingRouteCreate(t *testing.T) {
	body := `{"advisor_id":"5ac3a5f0-8f9f-4f52-b3a1-2e6f7b1d9a00","session_time":"2026-03-10T09:00:00Z","session_length":30}`

	t.Run("returns 201 with the booking", func(t *testing.T) {
		svc := &stubBookingService{booking: &service.BookingResponse{ID: "b1"}}
		route := NewBookingDefault(svc)
		c, rec := authedContext(t, http.MethodPost, "/api/bookings", body)

		require.NoError(t, route.CreateBooking(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "a1b2c3", svc.lastSub)
		assert.Contains(t, rec.Body.String(), `"b1"`)
	})

	t.Run("requires an authenticated context", func(t *testing.T) {
		route := NewBookingDefault(&stubBookingService{})
		c, rec := newJSONContext(t, http.MethodPost, "/api/bookings", body)

		require.NoError(t, route.CreateBooking(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("propagates a taken slot as conflict", func(t *testing.T) {
		route := NewBookingDefault(&stubBookingService{err: apierror.SlotNotAvailableError})
		c, rec := authedContext(t, http.MethodPost, "/api/bookings", body)

		require.NoError(t, route.CreateBooking(c))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestBookingRouteList(t *testing.T) {
	t.Run("wraps the caller's bookings", func(t *testing.T) {
		svc := &stubBookingService{bookings: []*service.BookingResponse{{ID: "b1"}}}
		route := NewBookingDefault(svc)
		c, rec := authedContext(t, http.MethodGet, "/api/bookings", "")

		require.NoError(t, route.GetBookings(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "a1b2c3", svc.lastSub)
		assert.Contains(t, rec.Body.String(), `"bookings"`)
	})
}
