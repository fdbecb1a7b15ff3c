package advisor

import (
	"context"
	"strings"
	"testing"

	"mops_advisor/pkg/core/score"
)

type stubProvider struct {
	response string
	prompt   string
}

func (s *stubProvider) GenerateResponse(_ context.Context, prompt string, _ string, _ map[string]interface{}) (string, error) {
	s.prompt = prompt
	return s.response, nil
}

func sampleRecords() []*score.Record {
	return []*score.Record{
		{
			Name:      "Z-score",
			Entries:   []score.Entry{{Label: "Z-score", Value: 4.43}},
			Guideline: score.ZScoreGuideline,
		},
	}
}

func TestGenerateReport(t *testing.T) {
	stub := &stubProvider{response: "```markdown\n# 財務分析\n狀況穩健。\n```"}

	report, err := GenerateReport(context.Background(), stub, sampleRecords())
	if err != nil {
		t.Fatal(err)
	}
	if report != "# 財務分析\n狀況穩健。" {
		t.Errorf("report = %q", report)
	}

	// The inherited prompt frame carries the score data and the question.
	if !strings.Contains(stub.prompt, "請根據這些數據") {
		t.Errorf("prompt frame missing: %q", stub.prompt)
	}
	if !strings.Contains(stub.prompt, "Z-score") || !strings.Contains(stub.prompt, "分析這家公司") {
		t.Errorf("prompt content missing: %q", stub.prompt)
	}
}

func TestGenerateVerdictLenientParsing(t *testing.T) {
	// Single quotes and a trailing comma: needs the repair ladder.
	stub := &stubProvider{response: "{'outlook': '穩健', 'risks': '應收帳款偏高',}"}

	verdict, err := GenerateVerdict(context.Background(), stub, sampleRecords())
	if err != nil {
		t.Fatal(err)
	}
	if verdict.Outlook != "穩健" || verdict.Risks != "應收帳款偏高" {
		t.Errorf("verdict = %+v", verdict)
	}
}

func TestNewProviderSelection(t *testing.T) {
	if _, ok := NewProvider(Config{Provider: "gemini"}).(*GeminiProvider); !ok {
		t.Error("gemini config did not yield a GeminiProvider")
	}
	if _, ok := NewProvider(Config{Provider: ""}).(*OpenRouterProvider); !ok {
		t.Error("default config did not yield an OpenRouterProvider")
	}
}
