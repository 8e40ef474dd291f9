package interfaces

import (
	"context"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/models"
)

// PlanGenerator produces a structured content plan from a request.
// Implementations are expected to return strict JSON matching the
// ContentPlan shape; malformed output is handled by the orchestrator.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, req *models.DesignRequest, brandContext string) (*models.ContentPlan, error)
}

// ImageGenerator produces a raster background from a visual prompt.
// Calls may be slow or rate-limited; retry and timeout policy live in the
// orchestrator, not in implementations.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, visualPrompt, aspectRatio string) ([]byte, error)
}

// DesignEvaluator scores finished designs and compares ensemble candidates
type DesignEvaluator interface {
	EvaluateDesign(ctx context.Context, image []byte, plan *models.ContentPlan, category, platform string) (*models.EvaluationScores, error)
	CompareDesigns(ctx context.Context, images [][]byte, category, platform string) (*models.Selection, error)
}
