package dao

import (
	"context"

	"gorm.io/gorm"

	"github.com/ProjectsTask/EasySwapMarket/base/stores/xkv"
)

// Dao 数据访问对象
// 封装数据库 (GORM) 与 Redis (KvStore) 的读路径
// 引擎的事务性写路径在 service 层的 DB.Transaction 内完成
type Dao struct {
	ctx context.Context

	DB      *gorm.DB
	KvStore *xkv.Store // 可为 nil (测试环境), 使用前需判空
}

// New 创建一个新的 Dao 实例
func New(ctx context.Context, db *gorm.DB, kvStore *xkv.Store) *Dao {
	return &Dao{
		ctx:     ctx,
		DB:      db,
		KvStore: kvStore,
	}
}
