package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"vendor_hub_v1_202608/internal/api/dto"
	"vendor_hub_v1_202608/internal/config"
	"vendor_hub_v1_202608/pkg/errs"
)

// AIService 用 Gemini 给主商品生成文案草稿
// 没配 API Key 时整个功能不可用，接口返回 400
type AIService struct {
	apiKey       string
	modelVersion string
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		apiKey:       cfg.GeminiAPIKey,
		modelVersion: cfg.ModelVersion,
	}
}

// Enabled 是否可用
func (s *AIService) Enabled() bool {
	return s.apiKey != ""
}

// GenerateCopy 生成商品描述/卖点/标签
func (s *AIService) GenerateCopy(ctx context.Context, req dto.AIDescribeReq) (*dto.AIDescribeResp, error) {
	if !s.Enabled() {
		return nil, errs.Validationf("AI copywriting is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("Gemini 初始化失败: %v", err)
	}
	defer client.Close()

	modelAI := client.GenerativeModel(s.modelVersion)
	modelAI.ResponseMIMEType = "application/json"

	prompt := fmt.Sprintf(`
        You are a copywriter for a multi-vendor marketplace catalog.
        Write listing copy for the product "%s".
    `, req.Name)
	if req.Category != "" {
		prompt += fmt.Sprintf("\nCategory: %s", req.Category)
	}
	if len(req.Attributes) > 0 {
		prompt += fmt.Sprintf("\nKey attributes: %s", strings.Join(req.Attributes, ", "))
	}
	if req.Instruction != "" {
		prompt += fmt.Sprintf("\nAdditional instructions: %s", req.Instruction)
	}
	prompt += `
        Output Schema (JSON):
        {
            "about": "string",
            "features": "string",
            "tags": ["string", "string"]
        }
    `

	resp, err := modelAI.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("AI 生成失败: %v", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("AI 返回为空")
	}

	var rawJSON string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			rawJSON = string(txt)
			break
		}
	}

	// 清洗可能存在的 markdown 包裹 (```json ... ```)
	rawJSON = strings.TrimSpace(rawJSON)
	rawJSON = strings.TrimPrefix(rawJSON, "```json")
	rawJSON = strings.TrimPrefix(rawJSON, "```")
	rawJSON = strings.TrimSuffix(rawJSON, "```")

	var result dto.AIDescribeResp
	if err := json.Unmarshal([]byte(rawJSON), &result); err != nil {
		return nil, fmt.Errorf("JSON 解析失败: %v | 原始数据: %s", err, rawJSON)
	}
	return &result, nil
}
