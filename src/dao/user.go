package dao

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ProjectsTask/EasySwapMarket/src/model"
)

// IsUserBlocked 查询用户是否在黑名单中
func (d *Dao) IsUserBlocked(ctx context.Context, userAddr string) (bool, error) {
	var block model.UserBlock
	db := d.DB.WithContext(ctx).Table(model.UserBlockTableName()).
		Where("user_address = ?", userAddr).
		Find(&block)
	if db.Error != nil {
		return false, errors.Wrap(db.Error, "failed on get user block info")
	}
	return block.Id != 0, nil
}

// GetMarketConfig 读取市场配置单例
// 不存在时返回 (nil, nil), 由启动引导负责初始化
func (d *Dao) GetMarketConfig(ctx context.Context) (*model.MarketConfig, error) {
	var cfg model.MarketConfig
	db := d.DB.WithContext(ctx).Table(model.MarketConfigTableName()).
		Where("id = ?", model.MarketConfigId).
		Find(&cfg)
	if db.Error != nil {
		return nil, errors.Wrap(db.Error, "failed on get market config")
	}
	if cfg.Id == 0 {
		return nil, nil
	}
	return &cfg, nil
}
