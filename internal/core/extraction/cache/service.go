package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"pantry-ingest/internal/infrastructure/config"
	"pantry-ingest/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// RedisService 跨實例共享的抽取結果緩存
// 行動端與邊緣函式各自打到不同實例時，同一連結只抽取一次
type RedisService struct {
	client *redis.Client
	config *config.CacheConfig
}

// NewRedisService 創建 redis 緩存服務，未啟用時返回 nil
func NewRedisService(cfg *config.CacheConfig) (*RedisService, error) {
	if !cfg.RedisEnabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisService{
		client: client,
		config: cfg,
	}, nil
}

// Get 獲取緩存的食譜草稿
func (s *RedisService) Get(ctx context.Context, canonicalURL string) (*common.RecipeDraft, error) {
	if s == nil || s.client == nil {
		return nil, fmt.Errorf("cache is disabled")
	}

	data, err := s.client.Get(ctx, s.generateKey(canonicalURL)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("cache miss")
		}
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}

	var draft common.RecipeDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache: %w", err)
	}

	return &draft, nil
}

// Set 設置緩存
func (s *RedisService) Set(ctx context.Context, canonicalURL string, draft *common.RecipeDraft) error {
	if s == nil || s.client == nil {
		return nil
	}

	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	if err := s.client.Set(ctx, s.generateKey(canonicalURL), data, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}

	return nil
}

// Close 關閉 redis 連線
func (s *RedisService) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

// generateKey 生成緩存鍵
func (s *RedisService) generateKey(canonicalURL string) string {
	hash := sha256.Sum256([]byte(canonicalURL))
	return fmt.Sprintf("extract:draft:%s", hex.EncodeToString(hash[:]))
}
