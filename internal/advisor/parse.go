package advisor

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/muhammadolammi/careerreadiness/internal/report"
)

var ErrEmptyReport = errors.New("model returned neither an AI report nor a skill gap analysis")

// CleanJSON strips the Markdown code fence models like to wrap JSON in.
func CleanJSON(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimSpace(clean)
}

func ParseReport(output string) (*report.Data, error) {
	if strings.TrimSpace(output) == "" {
		return nil, fmt.Errorf("empty response from agent")
	}
	var data report.Data
	if err := json.Unmarshal([]byte(CleanJSON(output)), &data); err != nil {
		return nil, fmt.Errorf("json unmarshal error: %w", err)
	}
	if data.Empty() {
		return nil, ErrEmptyReport
	}
	return &data, nil
}
