package advisor

import (
	"context"
	"encoding/json"
	"fmt"

	"mops_advisor/pkg/core/score"
	"mops_advisor/pkg/core/utils"
)

// Verdict is the structured summary the provider is asked for alongside
// the prose report.
type Verdict struct {
	Outlook string `json:"outlook"`
	Risks   string `json:"risks"`
}

// BuildPrompt frames the score records in the inherited zh-TW instruction.
func BuildPrompt(records []*score.Record, question string) (string, error) {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal score records: %w", err)
	}
	return fmt.Sprintf("請根據這些數據「%s」回答「%s」", string(data), question), nil
}

// GenerateReport asks the provider to analyze the company from the three
// score records and returns cleaned Markdown.
func GenerateReport(ctx context.Context, provider Provider, records []*score.Record) (string, error) {
	prompt, err := BuildPrompt(records, "分析這家公司")
	if err != nil {
		return "", err
	}

	response, err := provider.GenerateResponse(ctx, prompt, "", nil)
	if err != nil {
		return "", fmt.Errorf("advisory generation failed: %w", err)
	}

	report := utils.CleanMarkdown(response)
	if !utils.ValidateMarkdown(report) {
		return "", fmt.Errorf("advisory response is not renderable markdown")
	}
	return report, nil
}

// GenerateVerdict asks for a structured outlook/risk summary and decodes
// it leniently (models misquote JSON often enough to need the repair
// ladder).
func GenerateVerdict(ctx context.Context, provider Provider, records []*score.Record) (*Verdict, error) {
	prompt, err := BuildPrompt(records, `以JSON格式回覆 {"outlook": "...", "risks": "..."}，描述這家公司的前景與風險`)
	if err != nil {
		return nil, err
	}

	response, err := provider.GenerateResponse(ctx, prompt, "", map[string]interface{}{"response_format": "json"})
	if err != nil {
		return nil, fmt.Errorf("verdict generation failed: %w", err)
	}

	var verdict Verdict
	if _, err := utils.SmartParse(response, &verdict); err != nil {
		return nil, fmt.Errorf("verdict not parseable: %w", err)
	}
	return &verdict, nil
}
