package httputil_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tregmine/webapi/internal/httputil"
)

func parse(t *testing.T, query string) (int, int, error) {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/v0/applications?"+query, nil)
	return httputil.ParsePagination(c)
}

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Defaults", func(t *testing.T) {
		offset, limit, err := parse(t, "")
		require.NoError(t, err)
		assert.Equal(t, 0, offset)
		assert.Equal(t, httputil.DefaultLimit, limit)
	})

	t.Run("Explicit", func(t *testing.T) {
		offset, limit, err := parse(t, "offset=40&limit=20")
		require.NoError(t, err)
		assert.Equal(t, 40, offset)
		assert.Equal(t, 20, limit)
	})

	t.Run("MaxLimitAccepted", func(t *testing.T) {
		_, limit, err := parse(t, "limit=100")
		require.NoError(t, err)
		assert.Equal(t, httputil.MaxLimit, limit)
	})

	for _, query := range []string{"offset=-1", "offset=first"} {
		t.Run("BadOffset/"+query, func(t *testing.T) {
			offset, limit, err := parse(t, query)
			assert.ErrorContains(t, err, "invalid offset parameter")
			assert.Zero(t, offset)
			assert.Zero(t, limit)
		})
	}

	for _, query := range []string{"limit=0", "limit=101", "limit=all"} {
		t.Run("BadLimit/"+query, func(t *testing.T) {
			_, _, err := parse(t, query)
			assert.EqualError(t, err, "invalid limit parameter: must be between 1 and 100")
		})
	}
}
