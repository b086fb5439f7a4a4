package shared

import (
	"net/http"
	"strconv"

	"github.com/land-deals/backend/internal/http/response"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ParsePagination reads page and page_size query values with sane bounds.
func ParsePagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// ParseUintParam reads a positive integer path parameter, responding with
// a 400 when it is malformed.
func ParseUintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || value == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(value), true
}

// ParseUintQuery reads an optional positive integer query value; absent or
// malformed values read as zero.
func ParseUintQuery(c *gin.Context, name string) uint {
	value, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(value)
}

// ActorFrom returns the authenticated user's ID and role set by the auth
// middleware.
func ActorFrom(c *gin.Context) (uint, string) {
	userID, _ := c.Get("user_id")
	role, _ := c.Get("role")
	id, _ := userID.(uint)
	roleName, _ := role.(string)
	return id, roleName
}
