package dao

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"

	"github.com/ProjectsTask/EasySwapMarket/src/common/utils"
	"github.com/ProjectsTask/EasySwapMarket/src/model"
)

const CacheActivityNumPrefix = "cache:esm:activity:count:"

// 活动总数缓存 TTL (秒)
const cacheActivityNumTtl = 60

// ActivityCountCache 活动总数缓存 key 的构成要素
type ActivityCountCache struct {
	UserAddress   string `json:"user_address"`
	ListingId     int64  `json:"listing_id"`
	ActivityTypes []int8 `json:"activity_types"`
}

func getActivityCountCacheKey(c *ActivityCountCache) (string, error) {
	uid, err := json.Marshal(c)
	if err != nil {
		return "", errors.Wrap(err, "failed on marshal activity cache key")
	}
	return CacheActivityNumPrefix + string(uid), nil
}

// QueryActivities 分页查询市场事件日志
// 功能:
// 1. 支持按用户地址 (maker/taker)、listing id、事件类型过滤
// 2. 总数走 Redis 缓存, 避免频繁全表 Count (KvStore 为空时直查)
func (d *Dao) QueryActivities(ctx context.Context, userAddr string, listingId int64, activityTypes []int8, page, pageSize int) ([]model.Activity, int64, error) {
	var activities []model.Activity
	var total int64

	db := d.DB.WithContext(ctx).Table(model.ActivityTableName())
	if userAddr != "" {
		db = db.Where("maker = ? or taker = ?", userAddr, userAddr)
	}
	if listingId > 0 {
		db = db.Where("listing_id = ?", listingId)
	}
	if len(activityTypes) > 0 {
		db = db.Where("activity_type in (?)", activityTypes)
	}

	// 1. 先查缓存中的总数
	cacheKey, err := getActivityCountCacheKey(&ActivityCountCache{
		UserAddress:   userAddr,
		ListingId:     listingId,
		ActivityTypes: activityTypes,
	})
	if err != nil {
		return nil, 0, err
	}

	cached := ""
	if d.KvStore != nil {
		cached, _ = d.KvStore.Get(cacheKey)
	}
	if cached != "" {
		total, err = strconv.ParseInt(cached, 10, 64)
		if err != nil {
			total = 0
		}
	}

	// 2. 缓存未命中则落库 Count 并回填
	if total == 0 {
		if err := db.Count(&total).Error; err != nil {
			return nil, 0, errors.Wrap(err, "failed on count activities")
		}
		if d.KvStore != nil && total > 0 {
			_ = d.KvStore.Setex(cacheKey, strconv.FormatInt(total, 10), cacheActivityNumTtl)
		}
	}

	page, pageSize = utils.NormalizePage(page, pageSize)
	if err := db.Order("id desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&activities).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed on query activities")
	}

	return activities, total, nil
}
