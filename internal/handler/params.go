package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shareit/service-shareit/internal/platform/domain"
	"github.com/shareit/service-shareit/internal/platform/middleware"
	"github.com/shareit/service-shareit/internal/platform/response"
)

// callerID returns the id set by UserIDMiddleware, answering 400 when it is absent.
func callerID(c *gin.Context) (int64, bool) {
	id, ok := middleware.GetUserID(c)
	if !ok {
		response.BadRequest(c, "missing "+middleware.UserIDHeader+" header")
	}
	return id, ok
}

// pathID parses a positive numeric path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

// pageParams reads from and size. Range checks are left to the services.
func pageParams(c *gin.Context) (int, int, bool) {
	from, err := strconv.Atoi(c.DefaultQuery("from", strconv.Itoa(domain.DefaultPageFrom)))
	if err != nil {
		response.BadRequest(c, "from must be an integer")
		return 0, 0, false
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(domain.DefaultPageSize)))
	if err != nil {
		response.BadRequest(c, "size must be an integer")
		return 0, 0, false
	}
	return from, size, true
}
