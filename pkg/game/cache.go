package game

import (
	"log"
	"sync"

	"github.com/quasilyte/gdata/v2"
)

// 缓存键：配置原文和获取时间（Unix 毫秒）
const (
	CacheKeyConfig    = "config"
	CacheKeyFetchedAt = "fetchedAt"
)

// Cache 持久化键值缓存
type Cache interface {
	// Get 读取键，不存在时返回 false
	Get(key string) (string, bool)
	// Set 写入键，失败只记录日志
	Set(key, value string)
}

// cacheObject gdata 中存放特效缓存的对象名
const cacheObject = "effects"

// GdataCache 基于 gdata 的跨平台持久化缓存
//
// gdataManager 为 nil 时降级为纯内存缓存。
type GdataCache struct {
	gdataManager *gdata.Manager
	memory       *MemoryCache
}

// NewGdataCache 创建缓存
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存缓存）
func NewGdataCache(gdataManager *gdata.Manager) *GdataCache {
	return &GdataCache{gdataManager: gdataManager, memory: NewMemoryCache()}
}

// OpenGdataCache 按应用名打开 gdata 存储，失败时降级为内存缓存
func OpenGdataCache(appName string) *GdataCache {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[Cache] Warning: Failed to open storage %q: %v (using in-memory cache)", appName, err)
		return NewGdataCache(nil)
	}
	return NewGdataCache(m)
}

func (c *GdataCache) Get(key string) (string, bool) {
	if c.gdataManager == nil {
		return c.memory.Get(key)
	}
	if !c.gdataManager.ObjectPropExists(cacheObject, key) {
		return "", false
	}
	data, err := c.gdataManager.LoadObjectProp(cacheObject, key)
	if err != nil {
		log.Printf("[Cache] Warning: Failed to load %s: %v", key, err)
		return "", false
	}
	return string(data), true
}

func (c *GdataCache) Set(key, value string) {
	if c.gdataManager == nil {
		c.memory.Set(key, value)
		return
	}
	if err := c.gdataManager.SaveObjectProp(cacheObject, key, []byte(value)); err != nil {
		log.Printf("[Cache] Warning: Failed to save %s: %v", key, err)
	}
}

// Persistent 是否写入磁盘
func (c *GdataCache) Persistent() bool {
	return c.gdataManager != nil
}

// MemoryCache 进程内缓存
type MemoryCache struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{values: make(map[string]string)}
}

func (c *MemoryCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	return v, ok
}

func (c *MemoryCache) Set(key, value string) {
	c.mu.Lock()
	c.values[key] = value
	c.mu.Unlock()
}
