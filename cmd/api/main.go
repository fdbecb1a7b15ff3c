package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"mops_advisor/pkg/api/analysis"
	"mops_advisor/pkg/core/advisor"
	coreanalysis "mops_advisor/pkg/core/analysis"
	"mops_advisor/pkg/core/mops"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Model selection from config; missing file falls back to defaults.
	var cfg advisor.Config
	if data, err := os.ReadFile("config/models.yaml"); err == nil {
		yaml.Unmarshal(data, &cfg)
	} else {
		fmt.Printf("[WARNING] config/models.yaml not readable: %v\n", err)
		fmt.Println("  Falling back to default provider")
	}
	provider := advisor.NewProvider(cfg)

	handler := analysis.NewHandler(provider, func(stockCode string) coreanalysis.Source {
		return mops.NewClient(stockCode)
	})
	http.HandleFunc("/api/analysis/report", handler.HandleReport)

	fmt.Println("API server starting on :8080...")
	fmt.Println("  - POST /api/analysis/report")

	if err := http.ListenAndServe(":8080", nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
