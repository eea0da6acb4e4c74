package game

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/gonewx/festfx/pkg/config"
)

// ConfigService 获取特效配置：缓存优先，网络次之，失败时回退到旧缓存
//
// 所有失败都只记录警告，调用方拿到的要么是配置，要么是 nil（没有任何可用配置）。
type ConfigService struct {
	cache   Cache
	fetcher Fetcher
	group   singleflight.Group

	// Now 时钟，测试中可替换
	Now func() time.Time
}

// NewConfigService 创建配置服务
//
// 参数:
//   - cache: 持久化缓存
//   - fetcher: 配置获取方式
func NewConfigService(cache Cache, fetcher Fetcher) *ConfigService {
	return &ConfigService{cache: cache, fetcher: fetcher, Now: time.Now}
}

// Fetch 获取配置
//
// 流程：
//  1. 缓存未过期（按缓存中配置自身的 cacheDuration，默认 3600 秒）时直接返回缓存
//  2. 否则带 _t 防缓存参数请求网络并校验，成功则写入缓存并返回
//  3. 网络失败或校验失败时返回旧缓存（即使已过期），没有缓存时返回 nil
//
// 同一 URL 的并发请求会合并为一次网络访问。
func (s *ConfigService) Fetch(ctx context.Context, rawURL string) *config.EffectConfig {
	now := s.Now()
	cached, cachedAt, ok := s.loadCache()
	if ok && now.Sub(cachedAt) < cached.CacheDuration() {
		return cached
	}

	v, err, _ := s.group.Do(rawURL, func() (any, error) {
		return s.fetchRemote(ctx, rawURL, now)
	})
	if err != nil {
		if cached != nil {
			log.Printf("[ConfigService] Warning: %v (using cached config from %s)", err, cachedAt.Format(time.RFC3339))
			return cached
		}
		log.Printf("[ConfigService] Warning: %v (no cached config)", err)
		return nil
	}
	return v.(*config.EffectConfig)
}

// fetchRemote 请求网络、校验并写入缓存
func (s *ConfigService) fetchRemote(ctx context.Context, rawURL string, now time.Time) (*config.EffectConfig, error) {
	data, err := s.fetcher.Fetch(ctx, withCacheBuster(rawURL, now))
	if err != nil {
		return nil, fmt.Errorf("fetch config: %w", err)
	}
	cfg, err := config.ParseEffectConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	s.cache.Set(CacheKeyConfig, string(data))
	s.cache.Set(CacheKeyFetchedAt, strconv.FormatInt(now.UnixMilli(), 10))
	log.Printf("[ConfigService] Fetched config: enabled=%v, %d effects", cfg.Enabled, len(cfg.Effects))
	return cfg, nil
}

// loadCache 读取并校验缓存，任何一项缺失或损坏都视为没有缓存
func (s *ConfigService) loadCache() (*config.EffectConfig, time.Time, bool) {
	raw, ok := s.cache.Get(CacheKeyConfig)
	if !ok {
		return nil, time.Time{}, false
	}
	stamp, ok := s.cache.Get(CacheKeyFetchedAt)
	if !ok {
		return nil, time.Time{}, false
	}
	millis, err := strconv.ParseInt(stamp, 10, 64)
	if err != nil {
		log.Printf("[ConfigService] Warning: Bad cache timestamp %q: %v", stamp, err)
		return nil, time.Time{}, false
	}
	cfg, err := config.ParseEffectConfig([]byte(raw))
	if err != nil {
		log.Printf("[ConfigService] Warning: Discarding invalid cached config: %v", err)
		return nil, time.Time{}, false
	}
	return cfg, time.UnixMilli(millis), true
}
