package llm

import (
	"context"
	"strings"
	"sync"
)

// MockGenerator returns canned answers. It records the prompts it receives.
type MockGenerator struct {
	model    string
	response string
	err      error

	mu      sync.Mutex
	prompts []string
}

// NewMockGenerator returns a generator that always answers with a fixed
// lens recommendation document.
func NewMockGenerator(model string) *MockGenerator {
	return &MockGenerator{model: model, response: defaultMockAnswer}
}

// NewMockGeneratorWith returns a generator that answers with response, or
// fails with err when err is not nil.
func NewMockGeneratorWith(response string, err error) *MockGenerator {
	return &MockGenerator{model: "mock", response: response, err: err}
}

func (g *MockGenerator) Complete(ctx context.Context, prompt string, opts map[string]any) (string, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, prompt)
	g.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

func (g *MockGenerator) Model() string {
	if g.model == "" {
		return "mock"
	}
	if strings.HasSuffix(g.model, "-mock") || g.model == "mock" {
		return g.model
	}
	return g.model + "-mock"
}

// Prompts returns the prompts received so far.
func (g *MockGenerator) Prompts() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.prompts...)
}

const defaultMockAnswer = `{
  "summary": "Lentes multifocais com tratamento antirreflexo atendem bem a rotina descrita.",
  "lens_types": ["Multifocal digital", "Monofocal para leitura"],
  "treatments": ["Antirreflexo", "Filtro de luz azul"],
  "frame_tips": ["Aro com altura mínima de 30 mm para multifocais"],
  "warnings": []
}`
