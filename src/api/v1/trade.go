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

// BuyNftHandler 处理一口价购买请求
// 支付资产由挂单决定: 原生币挂单走原生币通道, 其余走 ERC20 通道
func BuyNftHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		listingId, err := parseListingId(c)
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		var req types.BuyNftParam
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		listing, err := service.GetListing(c.Request.Context(), svcCtx, listingId)
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		if utils.IsNativeToken(listing.PayToken) {
			err = service.BuyFixedPriceNftWithNativeToken(c.Request.Context(), svcCtx, req.CallerAddress, listingId, req.Amount)
		} else {
			err = service.BuyFixedPriceNftWithErc20Token(c.Request.Context(), svcCtx, req.CallerAddress, listingId, req.Amount)
		}
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, nil)
	}
}

// PlaceBidHandler 处理拍卖出价请求
func PlaceBidHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		listingId, err := parseListingId(c)
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		var req types.PlaceBidParam
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		listing, err := service.GetListing(c.Request.Context(), svcCtx, listingId)
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		if utils.IsNativeToken(listing.PayToken) {
			err = service.BuyAuctionNftWithNativeToken(c.Request.Context(), svcCtx, req.CallerAddress, listingId, req.Amount)
		} else {
			err = service.BuyAuctionNftWithErc20Token(c.Request.Context(), svcCtx, req.CallerAddress, listingId, req.Amount)
		}
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, nil)
	}
}

// ReleaseNftHandler 处理结拍请求
func ReleaseNftHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		listingId, err := parseListingId(c)
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		var req types.ReleaseNftParam
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		if err := service.ReleaseNft(c.Request.Context(), svcCtx, req.CallerAddress, listingId); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, nil)
	}
}

// WithdrawHandler 处理押金提取请求
func WithdrawHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.WithdrawParam
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		amount, err := service.WithdrawLockAmount(c.Request.Context(), svcCtx, req.CallerAddress, req.PayToken)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, types.WithdrawResp{Amount: amount})
	}
}

// GetUserLocksHandler 查询用户各支付资产下的可退余额
func GetUserLocksHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		userAddr := c.Param("address")
		if !utils.IsHexAddress(userAddr) {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		locks, err := service.GetUserLocks(c.Request.Context(), svcCtx, userAddr)
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		infos := make([]types.LockInfo, 0, len(locks))
		for _, lock := range locks {
			infos = append(infos, types.LockInfo{
				PayToken: lock.PayToken,
				Amount:   lock.Amount,
			})
		}
		xhttp.OkJson(c, types.LocksResp{Result: infos})
	}
}
