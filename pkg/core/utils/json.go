// Package utils contains output-hygiene helpers for LLM responses:
// JSON repair and lenient parsing, and Markdown cleaning/rendering.
package utils

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// RepairJSON fixes common JSON defects in model output: single quotes,
// unquoted keys, trailing commas, unclosed brackets, markdown fences.
func RepairJSON(malformed string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformed)
	if err != nil {
		return "", fmt.Errorf("json repair failed: %w", err)
	}
	return repaired, nil
}

// SmartParse tries increasingly lenient strategies to decode model output
// into schema: strict JSON, repaired JSON, then Hjson. It returns the
// variant that decoded successfully.
func SmartParse(input string, schema interface{}) (string, error) {
	if err := json.Unmarshal([]byte(input), schema); err == nil {
		return input, nil
	}

	if repaired, err := RepairJSON(input); err == nil {
		if err := json.Unmarshal([]byte(repaired), schema); err == nil {
			return repaired, nil
		}
	}

	var lenient interface{}
	if err := hjson.Unmarshal([]byte(input), &lenient); err == nil {
		if normalized, err := json.Marshal(lenient); err == nil {
			if err := json.Unmarshal(normalized, schema); err == nil {
				return string(normalized), nil
			}
		}
	}

	return "", fmt.Errorf("all parsing strategies failed for model output")
}
