package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"mops_advisor/pkg/core/advisor"
	"mops_advisor/pkg/core/analysis"
	"mops_advisor/pkg/core/mops"
	"mops_advisor/pkg/core/score"
)

func printRecord(outcome analysis.ScoreOutcome) {
	if outcome.Record == nil {
		fmt.Printf("  計算失敗: %s\n", outcome.Error)
		return
	}
	printScore(outcome.Record)
}

func printScore(record *score.Record) {
	fmt.Printf("=== %s ===\n", record.Name)
	for _, entry := range record.Entries {
		fmt.Printf("  %s: %v\n", entry.Label, entry.Value)
	}
	fmt.Printf("  判斷標準: %s\n", record.Guideline)
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: analyze <stock_code>")
		fmt.Println("Example: analyze 2330")
		os.Exit(1)
	}
	stockCode := os.Args[1]

	if err := godotenv.Load(); err != nil {
		fmt.Println("[WARNING] .env file not found, assuming environment variables are set.")
	}

	ctx := context.Background()
	client := mops.NewClient(stockCode)

	result, err := analysis.Run(ctx, stockCode, client)
	if err != nil {
		fmt.Printf("[FATAL] analysis failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("股票代號 %s (%d年第%d季 TTM)\n\n", stockCode, result.Year, result.Season)
	printRecord(result.ZScore)
	printRecord(result.FScore)
	printRecord(result.MScore)

	records := result.Records()
	if len(records) == 0 {
		fmt.Println("[WARNING] no score data, skipping advisory report")
		return
	}

	var cfg advisor.Config
	if data, err := os.ReadFile("config/models.yaml"); err == nil {
		yaml.Unmarshal(data, &cfg)
	}
	provider := advisor.NewProvider(cfg)

	report, err := advisor.GenerateReport(ctx, provider, records)
	if err != nil {
		fmt.Printf("[WARNING] advisory report failed: %v\n", err)
		return
	}
	fmt.Println("\n=== 分析報告 ===")
	fmt.Println(report)
}
