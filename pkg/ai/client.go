// pkg/ai/client.go

package ai

import (
	"context"

	"agrivision/pkg/advisory"
)

// Client writes a short narrative for an advisory result. The narrative is
// presentation only; it never changes the result.
type Client interface {
	SummarizeAdvisory(ctx context.Context, s advisory.SoilSample, r advisory.AdvisoryResult) string
}
