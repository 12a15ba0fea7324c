// pkg/ai/mock_client.go

package ai

import (
	"context"

	"agrivision/pkg/advisory"
)

type mockClient struct{}

// NewMock returns a Client that renders the fallback summary without any
// network call.
func NewMock() Client { return &mockClient{} }

func (m *mockClient) SummarizeAdvisory(_ context.Context, s advisory.SoilSample, r advisory.AdvisoryResult) string {
	return fallbackSummary(s, r)
}
