package service

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ProjectsTask/EasySwapMarket/base/errcode"
	"github.com/ProjectsTask/EasySwapMarket/src/common/utils"
	"github.com/ProjectsTask/EasySwapMarket/src/model"
	"github.com/ProjectsTask/EasySwapMarket/src/service/svc"
)

// GetListing 查询单条挂单详情
func GetListing(ctx context.Context, svcCtx *svc.ServerCtx, listingId int64) (*model.Listing, error) {
	listing, err := svcCtx.Dao.GetListingById(ctx, listingId)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, errors.Wrapf(errcode.ErrNftNotListed, "listing %d", listingId)
	}
	return listing, nil
}

// GetListings 分页查询挂单
func GetListings(ctx context.Context, svcCtx *svc.ServerCtx, seller string, activeOnly bool, page, pageSize int) ([]model.Listing, int64, error) {
	if seller != "" {
		seller = utils.NormalizeAddress(seller)
	}
	return svcCtx.Dao.QueryListings(ctx, seller, activeOnly, page, pageSize)
}

// GetActivities 分页查询市场事件日志
func GetActivities(ctx context.Context, svcCtx *svc.ServerCtx, userAddr string, listingId int64, activityTypes []int8, page, pageSize int) ([]model.Activity, int64, error) {
	if userAddr != "" {
		userAddr = utils.NormalizeAddress(userAddr)
	}
	return svcCtx.Dao.QueryActivities(ctx, userAddr, listingId, activityTypes, page, pageSize)
}
