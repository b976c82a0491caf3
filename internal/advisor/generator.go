package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"k8s.io/klog/v2"

	"github.com/muhammadolammi/careerreadiness/internal/report"
)

var ErrNoAnswers = errors.New("submission has no answers")

// Completer sends a prompt to a model and returns its raw text.
type Completer interface {
	Complete(ctx context.Context, userID, prompt string) (string, error)
}

type Generator struct {
	completer Completer
}

func NewGenerator(c Completer) *Generator {
	return &Generator{completer: c}
}

// Generate asks the model for both reports. There is a single attempt;
// the caller decides whether to let the user try again.
func (g *Generator) Generate(ctx context.Context, userID string, sub Submission) (*report.Data, error) {
	if strings.TrimSpace(sub.Profile.Role) == "" || strings.TrimSpace(sub.Profile.Industry) == "" {
		return nil, fmt.Errorf("role and industry are required")
	}
	if len(sub.Answers) == 0 {
		return nil, ErrNoAnswers
	}

	klog.V(4).Infof("generating report: user=%s role=%q answers=%d resume=%t",
		userID, sub.Profile.Role, len(sub.Answers), sub.ResumeText != "")

	output, err := g.completer.Complete(ctx, userID, BuildPrompt(sub))
	if err != nil {
		return nil, fmt.Errorf("generate report: %w", err)
	}
	data, err := ParseReport(output)
	if err != nil {
		klog.Warningf("⚠️ unusable model output for user %s: %v", userID, err)
		return nil, fmt.Errorf("generate report: %w", err)
	}
	return data, nil
}
