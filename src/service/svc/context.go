package svc

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/kv"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"gorm.io/gorm"

	"github.com/ProjectsTask/EasySwapMarket/base/errcode"
	"github.com/ProjectsTask/EasySwapMarket/base/evm/erc"
	"github.com/ProjectsTask/EasySwapMarket/base/logger/xzap"
	"github.com/ProjectsTask/EasySwapMarket/base/stores/gdb"
	"github.com/ProjectsTask/EasySwapMarket/base/stores/xkv"
	"github.com/ProjectsTask/EasySwapMarket/src/common/utils"
	"github.com/ProjectsTask/EasySwapMarket/src/config"
	"github.com/ProjectsTask/EasySwapMarket/src/dao"
	"github.com/ProjectsTask/EasySwapMarket/src/model"
)

// ServerCtx 服务上下文, 聚合引擎依赖的全部基础设施
type ServerCtx struct {
	C       *config.Config
	DB      *gorm.DB
	Dao     *dao.Dao
	KvStore *xkv.Store
	Evm     erc.Erc

	// Now 引擎时钟, 截止时间判定只在调用时刻惰性读取 (无后台扫描)
	Now func() time.Time
}

// CtxConfig 服务上下文配置构建器 (Option 模式)
type CtxConfig struct {
	db      *gorm.DB
	dao     *dao.Dao
	KvStore *xkv.Store
	Evm     erc.Erc
	now     func() time.Time
}

type CtxOption func(conf *CtxConfig)

// NewServerCtx 组装服务上下文
func NewServerCtx(options ...CtxOption) *ServerCtx {
	c := &CtxConfig{
		now: time.Now,
	}
	for _, opt := range options {
		opt(c)
	}
	return &ServerCtx{
		DB:      c.db,
		KvStore: c.KvStore,
		Dao:     c.dao,
		Evm:     c.Evm,
		Now:     c.now,
	}
}

func WithDB(db *gorm.DB) CtxOption {
	return func(conf *CtxConfig) {
		conf.db = db
	}
}

func WithKv(kv *xkv.Store) CtxOption {
	return func(conf *CtxConfig) {
		conf.KvStore = kv
	}
}

func WithDao(dao *dao.Dao) CtxOption {
	return func(conf *CtxConfig) {
		conf.dao = dao
	}
}

func WithEvm(evm erc.Erc) CtxOption {
	return func(conf *CtxConfig) {
		conf.Evm = evm
	}
}

func WithNow(now func() time.Time) CtxOption {
	return func(conf *CtxConfig) {
		conf.now = now
	}
}

// NewServiceContext 初始化服务上下文
// 依次初始化日志、Redis、数据库、链网关, 并引导市场配置单例
func NewServiceContext(c *config.Config) (*ServerCtx, error) {
	// 1. 日志
	_, err := xzap.SetUp(*c.Log)
	if err != nil {
		return nil, err
	}

	// 2. Redis
	var kvConf kv.KvConf
	for _, con := range c.Kv.Redis {
		kvConf = append(kvConf, cache.NodeConf{
			RedisConf: redis.RedisConf{
				Host: con.Host,
				Type: con.Type,
				Pass: con.Pass,
			},
			Weight: 1,
		})
	}
	store := xkv.NewStore(kvConf)

	// 3. 数据库
	db, err := gdb.NewDB(c.DB)
	if err != nil {
		return nil, err
	}

	// 4. 链网关 (运营账户)
	evm, err := erc.NewClient(context.Background(), c.ChainCfg.Endpoint, c.ChainCfg.OperatorKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed on create evm gateway")
	}

	// 5. DAO
	d := dao.New(context.Background(), db, store)

	serverCtx := NewServerCtx(
		WithDB(db),
		WithKv(store),
		WithDao(d),
		WithEvm(evm),
	)
	serverCtx.C = c

	// 6. 引导市场配置单例 (已存在则沿用库内数据, 逻辑可升级而状态保留)
	if err := BootstrapMarketConfig(context.Background(), serverCtx, c.Market); err != nil {
		return nil, err
	}

	return serverCtx, nil
}

// BootstrapMarketConfig 首次启动时落库市场配置
// 校验与链上构造函数一致: treasury 非零地址, 两侧费率均不超过 5000 bps
func BootstrapMarketConfig(ctx context.Context, svcCtx *ServerCtx, market config.MarketCfg) error {
	existing, err := svcCtx.Dao.GetMarketConfig(ctx)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	if !utils.IsHexAddress(market.Owner) {
		return errors.Wrapf(errcode.ErrInvalidParams, "invalid owner address %s", market.Owner)
	}
	if utils.IsNativeToken(market.Treasury) || !utils.IsHexAddress(market.Treasury) {
		return errors.Wrapf(errcode.ErrInvalidParams, "invalid treasury address %s", market.Treasury)
	}
	if market.SellerFeeBps < 0 || market.SellerFeeBps > model.FeeBpsCap {
		return errors.Wrapf(errcode.ErrInvalidParams, "seller fee %d over cap %d", market.SellerFeeBps, model.FeeBpsCap)
	}
	if market.BuyerFeeBps < 0 || market.BuyerFeeBps > model.FeeBpsCap {
		return errors.Wrapf(errcode.ErrInvalidParams, "buyer fee %d over cap %d", market.BuyerFeeBps, model.FeeBpsCap)
	}

	cfg := &model.MarketConfig{
		Id:           model.MarketConfigId,
		Owner:        utils.NormalizeAddress(market.Owner),
		Treasury:     utils.NormalizeAddress(market.Treasury),
		SellerFeeBps: market.SellerFeeBps,
		BuyerFeeBps:  market.BuyerFeeBps,
		UpdateTime:   svcCtx.Now().Unix(),
	}
	if err := svcCtx.DB.WithContext(ctx).Table(model.MarketConfigTableName()).
		Create(cfg).Error; err != nil {
		return errors.Wrap(err, "failed on create market config")
	}
	return nil
}
