package middleware

import (
	"context"
	"time"

	"github.com/twentyq/api/internal/llm"
)

// instrumentedClient wraps an llm.Client with call metrics.
type instrumentedClient struct {
	inner llm.Client
}

// InstrumentLLM decorates a client so every Generate call is recorded.
func InstrumentLLM(inner llm.Client) llm.Client {
	if inner == nil {
		return nil
	}
	return &instrumentedClient{inner: inner}
}

func (c *instrumentedClient) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	response, err := c.inner.Generate(ctx, prompt)
	RecordLLMCall(err == nil, time.Since(start))
	return response, err
}
