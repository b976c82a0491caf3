package advisor

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
	"k8s.io/klog/v2"
)

const AgentName = "career readiness advisor"

func NewAgent(ctx context.Context, apiKey, modelName string) (agent.Agent, error) {
	model, err := gemini.NewModel(ctx, modelName, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}

	advisor, err := llmagent.New(llmagent.Config{
		Name:        AgentName,
		Model:       model,
		Description: "Assess career readiness for AI",
		Instruction: Instruction(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}
	return advisor, nil
}

// AgentCompleter runs one prompt through an adk runner, using a throwaway
// in-memory session per call.
type AgentCompleter struct {
	appName  string
	runner   *runner.Runner
	sessions session.Service
}

func NewAgentCompleter(ctx context.Context, apiKey, modelName string) (*AgentCompleter, error) {
	a, err := NewAgent(ctx, apiKey, modelName)
	if err != nil {
		return nil, err
	}
	sessions := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        a.Name(),
		Agent:          a,
		SessionService: sessions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}
	return &AgentCompleter{appName: a.Name(), runner: r, sessions: sessions}, nil
}

func (c *AgentCompleter) Complete(ctx context.Context, userID, prompt string) (string, error) {
	created, err := c.sessions.Create(ctx, &session.CreateRequest{
		AppName:   c.appName,
		UserID:    userID,
		SessionID: uuid.NewString(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create agent session: %w", err)
	}
	sess := created.Session
	defer func() {
		err := c.sessions.Delete(context.Background(), &session.DeleteRequest{
			AppName:   sess.AppName(),
			UserID:    sess.UserID(),
			SessionID: sess.ID(),
		})
		if err != nil {
			klog.Warningf("⚠️ failed to delete agent session %s: %v", sess.ID(), err)
		}
	}()

	stream := c.runner.Run(ctx, sess.UserID(), sess.ID(), &genai.Content{
		Role:  "user",
		Parts: []*genai.Part{{Text: prompt}},
	}, agent.RunConfig{})

	var output string
	for event, err := range stream {
		if err != nil {
			return "", fmt.Errorf("agent stream error: %w", err)
		}
		if event != nil && event.IsFinalResponse() && event.Content != nil && len(event.Content.Parts) > 0 {
			output = event.Content.Parts[0].Text
		}
	}
	if output == "" {
		return "", fmt.Errorf("empty agent response")
	}
	return output, nil
}
