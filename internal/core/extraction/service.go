package extraction

import (
	"context"
	"sync"

	"pantry-ingest/internal/core/extraction/cache"
	"pantry-ingest/internal/core/extraction/queue"
	"pantry-ingest/internal/infrastructure/config"
	"pantry-ingest/internal/pkg/common"

	"go.uber.org/zap"
)

// Service 抽取服務：整合緩存、隊列與抽取端客戶端
// 同一正規化 URL 在 TTL 內只會對抽取端發出一次請求
type Service struct {
	config     *config.Config
	client     *Client
	queue      *queue.Manager
	memCache   *cache.CacheManager
	redisCache *cache.RedisService
	wg         sync.WaitGroup
}

// NewService 創建抽取服務並啟動工作協程
func NewService(cfg *config.Config, memCache *cache.CacheManager, redisCache *cache.RedisService) *Service {
	s := &Service{
		config:     cfg,
		client:     NewClient(cfg),
		queue:      queue.NewManager(cfg),
		memCache:   memCache,
		redisCache: redisCache,
	}

	// 啟動工作協程
	for i := 0; i < cfg.Queue.Workers; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	common.LogInfo("抽取服務已初始化",
		zap.Int("工作協程數", cfg.Queue.Workers),
		zap.Int("隊列容量", cfg.Queue.MaxSize),
	)

	return s
}

// worker 消費隊列請求並呼叫抽取端
func (s *Service) worker(id int) {
	defer s.wg.Done()

	for req := range s.queue.GetQueue() {
		// 請求方可能已放棄等待
		if req.Context.Err() != nil {
			req.Result <- queue.Result{Error: req.Context.Err()}
			continue
		}

		draft, err := s.client.ExtractDraft(req.Context, req.Source)
		if err != nil {
			common.LogError("抽取請求失敗",
				zap.Error(err),
				zap.Int("worker", id),
				zap.String("platform", string(req.Source.Platform)),
			)
		}
		s.queue.IncrementProcessed()

		req.Result <- queue.Result{Draft: draft, Error: err}
	}
}

// ExtractDraft 取得一個已驗證來源的食譜草稿，優先走緩存
func (s *Service) ExtractDraft(ctx context.Context, source common.RecipeSource) (*common.RecipeDraft, error) {
	if !s.config.Extraction.Enabled {
		return nil, common.ErrExtractionService
	}

	// 先查記憶體緩存
	if cached, err := s.memCache.Get(ctx, source.URL); err == nil {
		var draft common.RecipeDraft
		if err := common.ParseJSON(cached, &draft); err == nil {
			return &draft, nil
		}
		// 緩存內容損壞時視同未命中，往下走
		common.LogWarn("記憶體緩存內容無法解析",
			zap.String("url", source.URL),
		)
	}

	// 再查 redis 緩存
	if s.redisCache != nil {
		if draft, err := s.redisCache.Get(ctx, source.URL); err == nil {
			s.storeMemCache(ctx, source.URL, draft)
			return draft, nil
		}
	}

	// 緩存未命中，排入隊列等待工作協程處理
	resultCh, err := s.queue.Enqueue(ctx, source)
	if err != nil {
		return nil, common.ErrExtractionService.WithDetails(err.Error())
	}

	select {
	case result := <-resultCh:
		if result.Error != nil {
			return nil, common.ErrExtractionService.WithDetails(result.Error.Error())
		}
		s.storeCaches(ctx, source.URL, result.Draft)
		return result.Draft, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// storeCaches 寫入兩層緩存，失敗只記錄不中斷
func (s *Service) storeCaches(ctx context.Context, canonicalURL string, draft *common.RecipeDraft) {
	s.storeMemCache(ctx, canonicalURL, draft)

	if s.redisCache != nil {
		if err := s.redisCache.Set(ctx, canonicalURL, draft); err != nil {
			common.LogError("寫入 redis 緩存失敗",
				zap.Error(err),
				zap.String("url", canonicalURL),
			)
		}
	}
}

// storeMemCache 寫入記憶體緩存
func (s *Service) storeMemCache(ctx context.Context, canonicalURL string, draft *common.RecipeDraft) {
	data, err := common.ToJSON(draft)
	if err != nil {
		return
	}
	if err := s.memCache.Set(ctx, canonicalURL, data); err != nil && err != common.ErrCacheFull {
		common.LogError("寫入記憶體緩存失敗",
			zap.Error(err),
			zap.String("url", canonicalURL),
		)
	}
}

// QueueStatus 獲取隊列狀態，供健康檢查使用
func (s *Service) QueueStatus() *queue.Status {
	return s.queue.GetQueueStatus()
}

// CacheStats 獲取記憶體緩存統計
func (s *Service) CacheStats() map[string]interface{} {
	if s.memCache == nil {
		return map[string]interface{}{"enabled": false}
	}
	return s.memCache.GetStats()
}

// Close 關閉抽取服務：停止收件並等待工作協程結束
func (s *Service) Close() {
	s.queue.Close()
	s.wg.Wait()

	if s.redisCache != nil {
		if err := s.redisCache.Close(); err != nil {
			common.LogError("關閉 redis 緩存失敗", zap.Error(err))
		}
	}
}
