package v1

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ProjectsTask/EasySwapMarket/base/errcode"
	"github.com/ProjectsTask/EasySwapMarket/base/xhttp"
	"github.com/ProjectsTask/EasySwapMarket/src/model"
	"github.com/ProjectsTask/EasySwapMarket/src/service/svc"
	service "github.com/ProjectsTask/EasySwapMarket/src/service/v1"
	types "github.com/ProjectsTask/EasySwapMarket/src/types/v1"
)

// ListNftHandler 处理挂单请求
// 主要功能:
// 1. 解析并校验挂单参数 (地址格式由 address 验证器兜底)
// 2. 调用 service 层完成链上校验与落库
func ListNftHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.ListNftParam
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		listing, err := service.ListNft(c.Request.Context(), svcCtx, service.ListNftParams{
			Caller:     req.CallerAddress,
			NftAddress: req.NftAddress,
			TokenId:    req.TokenId,
			PayToken:   req.PayToken,
			Price:      req.Price,
			Quantity:   req.Quantity,
			Duration:   req.Duration,
			NftKind:    req.NftKind,
			SellKind:   req.SellKind,
		})
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, listing)
	}
}

// CancelListingHandler 处理撤单请求
func CancelListingHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		listingId, err := parseListingId(c)
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		var req types.CancelListingParam
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		if err := service.CancelListing(c.Request.Context(), svcCtx, req.CallerAddress, listingId); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, nil)
	}
}

// GetListingHandler 查询单条挂单详情
func GetListingHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		listingId, err := parseListingId(c)
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		listing, err := service.GetListing(c.Request.Context(), svcCtx, listingId)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, toListingInfo(listing))
	}
}

// GetListingsHandler 分页查询挂单
// 查询参数: seller (地址过滤), active_only, page, page_size
func GetListingsHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		seller := c.Query("seller")
		activeOnly := c.Query("active_only") == "true"
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

		listings, total, err := service.GetListings(c.Request.Context(), svcCtx, seller, activeOnly, page, pageSize)
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		infos := make([]types.ListingInfo, 0, len(listings))
		for i := range listings {
			infos = append(infos, toListingInfo(&listings[i]))
		}
		xhttp.OkJson(c, types.ListingsResp{
			Result: infos,
			Count:  total,
		})
	}
}

// toListingInfo 挂单模型到响应视图的映射
func toListingInfo(listing *model.Listing) types.ListingInfo {
	return types.ListingInfo{
		Id:            listing.Id,
		Seller:        listing.Seller,
		NftAddress:    listing.NftAddress,
		PayToken:      listing.PayToken,
		TokenId:       listing.TokenId,
		Quantity:      listing.Quantity,
		Price:         listing.Price,
		Deadline:      listing.Deadline,
		NftKind:       listing.NftKind,
		SellKind:      listing.SellKind,
		Active:        listing.Active,
		HighestBidder: listing.HighestBidder,
		HighestBid:    listing.HighestBid,
		CreateTime:    listing.CreateTime,
	}
}
