package providerhttp

import (
	"fmt"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/esport-datanal/internal/provider"
)

func DecodeObject(raw []byte) (provider.Payload, error) {
	var out map[string]any
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode provider payload: %w", err)
	}
	return provider.Payload(out), nil
}

func DecodeList(raw []byte) ([]provider.Payload, error) {
	var items []map[string]any
	if err := sonic.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode provider list: %w", err)
	}
	out := make([]provider.Payload, 0, len(items))
	for _, item := range items {
		out = append(out, provider.Payload(item))
	}
	return out, nil
}

// Objects converts a decoded JSON list to payloads, skipping non-objects.
func Objects(raw any) []provider.Payload {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]provider.Payload, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, provider.Payload(m))
		}
	}
	return out
}
