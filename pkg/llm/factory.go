package llm

import "fmt"

// Config selects and configures a generator provider.
type Config struct {
	Provider string
	Model    string
	APIKey   string
}

// NewGenerator creates a generator based on configuration
func NewGenerator(cfg Config) (Generator, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIGenerator(cfg.Model, cfg.APIKey)
	case "mock", "":
		return NewMockGenerator(cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported generator provider: %s", cfg.Provider)
	}
}
