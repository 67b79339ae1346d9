package get_salon_bookings

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

func TestToServiceRequest(t *testing.T) {
	caller := domain.Identity{UserID: 3, Role: domain.RoleOwner}

	t.Run("single date wins over range", func(t *testing.T) {
		req, err := ToServiceRequest(9, caller, url.Values{
			"date":      {"2030-02-01"},
			"startDate": {"2030-01-01"},
			"status":    {"CONFIRMED"},
		})
		require.NoError(t, err)
		assert.Equal(t, "2030-02-01", req.StartDate.Format(domain.DateFormat))
		assert.Equal(t, "2030-02-01", req.EndDate.Format(domain.DateFormat))
		assert.Equal(t, "CONFIRMED", *req.Status)
		assert.False(t, req.IncludeRejected)
	})

	t.Run("open range", func(t *testing.T) {
		req, err := ToServiceRequest(9, caller, url.Values{
			"startDate":       {"2030-01-01"},
			"includeRejected": {"true"},
		})
		require.NoError(t, err)
		assert.NotNil(t, req.StartDate)
		assert.Nil(t, req.EndDate)
		assert.True(t, req.IncludeRejected)
	})

	t.Run("bad values", func(t *testing.T) {
		_, err := ToServiceRequest(9, caller, url.Values{"endDate": {"01/02/2030"}})
		assert.Error(t, err)

		_, err = ToServiceRequest(9, caller, url.Values{"includeRejected": {"maybe"}})
		assert.Error(t, err)
	})
}
