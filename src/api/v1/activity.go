package v1

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/ProjectsTask/EasySwapMarket/base/errcode"
	"github.com/ProjectsTask/EasySwapMarket/base/xhttp"
	"github.com/ProjectsTask/EasySwapMarket/src/service/svc"
	service "github.com/ProjectsTask/EasySwapMarket/src/service/v1"
	types "github.com/ProjectsTask/EasySwapMarket/src/types/v1"
)

// ActivityHandler 处理市场事件查询请求
// 主要功能:
// 1. 解析前端传递的过滤参数 (filters)
// 2. 支持按用户地址、listing id、事件类型等维度过滤
func ActivityHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		filterParam := c.Query("filters")
		if filterParam == "" {
			xhttp.Error(c, errcode.NewCustomErr("Filter param is nil."))
			return
		}

		var filter types.ActivityFilterParams
		if err := json.Unmarshal([]byte(filterParam), &filter); err != nil {
			xhttp.Error(c, errcode.NewCustomErr("Filter param is nil."))
			return
		}

		activities, total, err := service.GetActivities(
			c.Request.Context(),
			svcCtx,
			filter.UserAddress,
			filter.ListingId,
			filter.ActivityTypes,
			filter.Page,
			filter.PageSize,
		)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, types.ActivityResp{
			Result: activities,
			Count:  total,
		})
	}
}
