package xkv

import (
	"github.com/zeromicro/go-zero/core/stores/kv"
)

// Store 对 go-zero kv.Store 的薄封装
// 预留扩展点 (统一 key 前缀 / 打点), 当前直接代理
type Store struct {
	kv.Store
}

// NewStore 根据 redis 节点配置创建 Store
func NewStore(c kv.KvConf) *Store {
	return &Store{
		Store: kv.NewStore(c),
	}
}
