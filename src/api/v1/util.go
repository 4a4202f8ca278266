package v1

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/ProjectsTask/EasySwapMarket/base/errcode"
)

// parseListingId 从路径参数解析 listing id
func parseListingId(c *gin.Context) (int64, error) {
	raw := c.Param("id")
	listingId, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || listingId <= 0 {
		return 0, errors.Wrapf(errcode.ErrInvalidParams, "invalid listing id %s", raw)
	}
	return listingId, nil
}
