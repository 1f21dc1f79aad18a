package extraction

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"pantry-ingest/internal/infrastructure/config"
	"pantry-ingest/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client 抽取端 API 客戶端（OpenRouter 相容的 chat/completions 介面）
// 抽取引擎負責抓頁面、讀字幕、產出食材草稿；本服務只消費它的輸出
type Client struct {
	config *config.Config
	client *resty.Client
}

// NewClient 創建抽取端客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.Extraction.BaseURL).
		SetTimeout(cfg.Extraction.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.Extraction.APIKey)).
		SetHeader("HTTP-Referer", "https://pantry-ingest.app").
		SetHeader("X-Title", "Pantry Ingest")

	return &Client{
		config: cfg,
		client: client,
	}
}

// draftPayload 抽取端回傳的草稿結構
type draftPayload struct {
	Title       string `json:"title"`
	Ingredients []struct {
		Text            string   `json:"text"`
		Method          string   `json:"method"`
		ModelConfidence *float64 `json:"model_confidence"`
	} `json:"ingredients"`
}

// ExtractDraft 請抽取端針對一個已驗證的來源產出食譜草稿
func (c *Client) ExtractDraft(ctx context.Context, source common.RecipeSource) (*common.RecipeDraft, error) {
	prompt := fmt.Sprintf(`請讀取以下社群食譜連結的內容，抽出食譜標題與逐行食材清單
		(不需要考慮可讀性，請省略所有空格和換行，返回最緊湊的 JSON 格式)。
		連結：%s
		平台：%s
		要求：
		1. 只抽取內容中實際出現的食材行，不要補充未出現的食材
		2. 每一行食材保留原始文字，不要自行改寫數量或單位
		3. method 欄位標記來源：創作者說明文字填 "creator"、影片 metadata 填 "metadata"、由模型推斷填 "model"
		4. method 為 "model" 時必須附上 model_confidence（0 到 1 之間的小數）
		5. 所有欄位必須使用雙引號
		請以以下 JSON 格式返回：
		{
			"title": "食譜標題",
			"ingredients": [
				{
					"text": "2 cups flour",
					"method": "creator",
					"model_confidence": null
				}
			]
		}`, source.URL, source.Platform)

	req := map[string]interface{}{
		"model": c.config.Extraction.Model,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": prompt,
			},
		},
		"max_tokens": c.config.Extraction.MaxTokens,
	}

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")
	common.LogExtractionCall(source.URL, time.Since(start), err, "")

	if err != nil {
		return nil, fmt.Errorf("failed to send request to extraction engine: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("extraction engine returned error: %s", resp.String())
	}

	// 解析回應外層
	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse extraction response: %w", err)
	}

	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("no choices in extraction response")
	}

	// 模型回應常夾帶說明文字與鬆散 JSON，解析前先修補
	content := common.ExtractJSONObject(result.Choices[0].Message.Content)
	content = common.QuoteJSONKeys(content)

	var payload draftPayload
	if err := common.ParseJSON(content, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse draft payload: %w", err)
	}

	draft := &common.RecipeDraft{
		Title:       payload.Title,
		Ingredients: make([]common.RawIngredientDraft, 0, len(payload.Ingredients)),
	}

	for _, ing := range payload.Ingredients {
		if ing.Text == "" {
			continue
		}
		method := common.ExtractionMethod(ing.Method)
		switch method {
		case common.MethodMetadata, common.MethodCreator, common.MethodModel, common.MethodManual:
		default:
			// 未標記或未知標記一律視為模型推斷
			method = common.MethodModel
		}
		draft.Ingredients = append(draft.Ingredients, common.RawIngredientDraft{
			Text:            ing.Text,
			Method:          method,
			ModelConfidence: ing.ModelConfidence,
		})
	}

	common.LogInfo("Successfully extracted recipe draft",
		zap.String("platform", string(source.Platform)),
		zap.Int("ingredients_count", len(draft.Ingredients)),
	)

	return draft, nil
}
