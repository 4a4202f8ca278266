package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/ProjectsTask/EasySwapMarket/base/errcode"
	"github.com/ProjectsTask/EasySwapMarket/base/xhttp"
	"github.com/ProjectsTask/EasySwapMarket/src/common/utils"
	"github.com/ProjectsTask/EasySwapMarket/src/service/svc"
	service "github.com/ProjectsTask/EasySwapMarket/src/service/v1"
	types "github.com/ProjectsTask/EasySwapMarket/src/types/v1"
)

// BlockUserHandler 管理员拉黑用户
func BlockUserHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.BlockUserParam
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		if err := service.BlockUser(c.Request.Context(), svcCtx, req.CallerAddress, req.UserAddress); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, nil)
	}
}

// UnblockUserHandler 管理员解封用户
func UnblockUserHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.BlockUserParam
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		if err := service.UnblockUser(c.Request.Context(), svcCtx, req.CallerAddress, req.UserAddress); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, nil)
	}
}

// BlockStatusHandler 查询用户黑名单状态
func BlockStatusHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		userAddr := c.Param("address")
		if !utils.IsHexAddress(userAddr) {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		blocked, err := service.IsBlocked(c.Request.Context(), svcCtx, userAddr)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, types.BlockStatusResp{
			UserAddress: utils.NormalizeAddress(userAddr),
			Blocked:     blocked,
		})
	}
}

// SetTreasuryHandler 变更金库地址
func SetTreasuryHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.SetTreasuryParam
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		if err := service.SetTreasury(c.Request.Context(), svcCtx, req.CallerAddress, req.Treasury); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, nil)
	}
}

// SetTreasurySellerFeeHandler 变更卖家侧费率
func SetTreasurySellerFeeHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.SetTreasuryFeeParam
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		if err := service.SetTreasurySellerFee(c.Request.Context(), svcCtx, req.CallerAddress, req.FeeBps); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, nil)
	}
}

// SetTreasuryBuyerFeeHandler 变更买家侧费率
func SetTreasuryBuyerFeeHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.SetTreasuryFeeParam
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		if err := service.SetTreasuryBuyerFee(c.Request.Context(), svcCtx, req.CallerAddress, req.FeeBps); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, nil)
	}
}

// TransferOwnershipHandler 移交管理权
func TransferOwnershipHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.TransferOwnershipParam
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		if err := service.TransferOwnership(c.Request.Context(), svcCtx, req.CallerAddress, req.NewOwner); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, nil)
	}
}

// TreasuryDataHandler 查询市场配置
func TreasuryDataHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg, err := service.TreasuryData(c.Request.Context(), svcCtx)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, types.TreasuryDataResp{
			Owner:        cfg.Owner,
			Treasury:     cfg.Treasury,
			SellerFeeBps: cfg.SellerFeeBps,
			BuyerFeeBps:  cfg.BuyerFeeBps,
		})
	}
}
