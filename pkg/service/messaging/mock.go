package messaging

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/taskbeacon/taskbeacon/pkg/domain/model"
)

// SentMessage records one multicast call received by the Mock transport
type SentMessage struct {
	Tokens  []string
	Message *model.Message
}

// Mock is an in-memory transport for tests. It records every call and can
// be scripted to fail entirely or to reject individual tokens.
type Mock struct {
	mu sync.Mutex

	// SendError, when set, makes every call fail at the transport level
	SendError error

	// FailTokens marks individual tokens as rejected by the transport
	FailTokens map[string]string // token -> error message

	sent []SentMessage
}

var _ Service = &Mock{}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SendMulticast(ctx context.Context, tokens []string, msg *model.Message) (*model.MulticastResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SendError != nil {
		return nil, goerr.Wrap(m.SendError, "mock transport failure")
	}

	copied := &model.Message{
		Title: msg.Title,
		Body:  msg.Body,
		Data:  make(map[string]string, len(msg.Data)),
	}
	for k, v := range msg.Data {
		copied.Data[k] = v
	}

	m.sent = append(m.sent, SentMessage{
		Tokens:  append([]string(nil), tokens...),
		Message: copied,
	})

	result := &model.MulticastResult{
		Responses: make([]model.SendResult, len(tokens)),
	}
	for i, token := range tokens {
		if cause, failed := m.FailTokens[token]; failed {
			result.FailureCount++
			result.Responses[i] = model.SendResult{Error: cause}
		} else {
			result.SuccessCount++
			result.Responses[i] = model.SendResult{Success: true}
		}
	}

	return result, nil
}

// Sent returns a copy of all recorded calls
func (m *Mock) Sent() []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentMessage(nil), m.sent...)
}
