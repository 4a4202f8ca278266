package dao

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ProjectsTask/EasySwapMarket/src/common/utils"
	"github.com/ProjectsTask/EasySwapMarket/src/model"
)

// GetListingById 查询单条挂单
// 不存在时返回 (nil, nil), 由调用方决定错误语义
func (d *Dao) GetListingById(ctx context.Context, listingId int64) (*model.Listing, error) {
	var listing model.Listing
	db := d.DB.WithContext(ctx).Table(model.ListingTableName()).
		Where("id = ?", listingId).
		Find(&listing)
	if db.Error != nil {
		return nil, errors.Wrap(db.Error, "failed on get listing")
	}
	if listing.Id == 0 {
		return nil, nil
	}
	return &listing, nil
}

// QueryListings 按条件分页查询挂单
// 参数:
// - seller: 卖家地址过滤 (空串跳过)
// - activeOnly: 仅返回在售挂单
// - page/pageSize: 分页
func (d *Dao) QueryListings(ctx context.Context, seller string, activeOnly bool, page, pageSize int) ([]model.Listing, int64, error) {
	var listings []model.Listing
	var total int64

	db := d.DB.WithContext(ctx).Table(model.ListingTableName())
	if seller != "" {
		db = db.Where("seller = ?", seller)
	}
	if activeOnly {
		db = db.Where("active = ?", true)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed on count listings")
	}

	page, pageSize = utils.NormalizePage(page, pageSize)
	if err := db.Order("id desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&listings).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed on query listings")
	}

	return listings, total, nil
}
