package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLimit is the page size used when no limit is given.
	DefaultLimit = 50
	// MaxLimit is the largest accepted page size.
	MaxLimit = 100
)

// ParsePagination parses the offset and limit query parameters.
func ParsePagination(c *gin.Context) (offset, limit int, err error) {
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, fmt.Errorf("invalid offset parameter: must be a non-negative integer")
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))
	if err != nil || limit < 1 || limit > MaxLimit {
		return 0, 0, fmt.Errorf("invalid limit parameter: must be between 1 and %d", MaxLimit)
	}

	return offset, limit, nil
}
