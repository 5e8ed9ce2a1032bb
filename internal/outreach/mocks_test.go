package outreach_test

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"funil.app/crm/common/llm"
	"funil.app/crm/internal/model"
)

type mockLLMClient struct {
	mu     sync.Mutex
	calls  map[model.Channel]int
	chatFn func(ctx context.Context, channel model.Channel, attempt int) (string, error)
}

func newMockLLMClient(fn func(ctx context.Context, channel model.Channel, attempt int) (string, error)) *mockLLMClient {
	return &mockLLMClient{calls: map[model.Channel]int{}, chatFn: fn}
}

func (m *mockLLMClient) Chat(ctx context.Context, req llm.Request, result any) (*llm.Response, error) {
	channel := model.ChannelEmail
	if strings.Contains(req.UserPrompt, `type = "whatsapp"`) {
		channel = model.ChannelWhatsApp
	}

	m.mu.Lock()
	m.calls[channel]++
	attempt := m.calls[channel]
	m.mu.Unlock()

	body, err := m.chatFn(ctx, channel, attempt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(body), result); err != nil {
		return nil, err
	}
	return &llm.Response{}, nil
}

func (m *mockLLMClient) Model() string {
	return "mock"
}

func (m *mockLLMClient) callsFor(c model.Channel) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[c]
}
