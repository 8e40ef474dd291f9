package pipeline

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/common"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/models"
)

func TestGenerateEnsemble_SelectsBestCandidate(t *testing.T) {
	background := testBackground(t)
	tp := newTestPipeline(t,
		&stubPlanner{plan: testPlan()},
		&stubImager{fn: func(int) ([]byte, error) { return background, nil }},
		&stubEvaluator{selection: &models.Selection{BestIndex: 2, Reasoning: "Strongest composition and readability"}},
	)

	resp, err := tp.orchestrator.GenerateEnsemble(context.Background(), &models.DesignRequest{RawInput: "plots near the airport"}, 3)
	require.NoError(t, err)

	require.Len(t, resp.Designs, 3)
	assert.Equal(t, resp.Designs[2].ID, resp.BestDesignID)
	assert.Equal(t, "Strongest composition and readability", resp.SelectionReasoning)
	assert.Equal(t, 3, tp.store.count(), "every variation persisted")
}

func TestGenerateEnsemble_DropsFailedVariations(t *testing.T) {
	background := testBackground(t)
	var calls atomic.Int32
	tp := newTestPipeline(t,
		&stubPlanner{plan: testPlan()},
		&stubImager{fn: func(int) ([]byte, error) {
			// Single-attempt policy below, so exactly one branch fails
			if calls.Add(1) == 1 {
				return nil, errors.New("quota exceeded")
			}
			return background, nil
		}},
		&stubEvaluator{selection: &models.Selection{BestIndex: 1, Reasoning: "Cleaner headline placement"}},
		func(cfg *common.Config) { cfg.Pipeline.MaxRetries = 1 },
	)

	resp, err := tp.orchestrator.GenerateEnsemble(context.Background(), &models.DesignRequest{RawInput: "villas in Wakad"}, 3)
	require.NoError(t, err)

	require.Len(t, resp.Designs, 2, "failed variation dropped, run still succeeds")
	assert.Equal(t, resp.Designs[1].ID, resp.BestDesignID)
	assert.Equal(t, 2, tp.store.count())
}

func TestGenerateEnsemble_AllVariationsFail(t *testing.T) {
	tp := newTestPipeline(t,
		&stubPlanner{plan: testPlan()},
		&stubImager{fn: func(int) ([]byte, error) { return nil, errors.New("backend down") }},
		&stubEvaluator{},
	)

	_, err := tp.orchestrator.GenerateEnsemble(context.Background(), &models.DesignRequest{RawInput: "villas"}, 2)
	require.Error(t, err)

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageEnsemble, stageErr.Stage)
	assert.Equal(t, 0, tp.store.count())
}

func TestGenerateEnsemble_SingleVariationSkipsComparison(t *testing.T) {
	background := testBackground(t)
	tp := newTestPipeline(t,
		&stubPlanner{plan: testPlan()},
		&stubImager{fn: func(int) ([]byte, error) { return background, nil }},
		&stubEvaluator{selection: &models.Selection{BestIndex: 0, Reasoning: "unused"}},
	)

	resp, err := tp.orchestrator.GenerateEnsemble(context.Background(), &models.DesignRequest{RawInput: "studio flats"}, 1)
	require.NoError(t, err)

	require.Len(t, resp.Designs, 1)
	assert.Equal(t, resp.Designs[0].ID, resp.BestDesignID)
	assert.Equal(t, "First successful generation", resp.SelectionReasoning)
}

func TestGenerateEnsemble_ClampsVariationCount(t *testing.T) {
	background := testBackground(t)
	tp := newTestPipeline(t,
		&stubPlanner{plan: testPlan()},
		&stubImager{fn: func(int) ([]byte, error) { return background, nil }},
		&stubEvaluator{},
	)

	resp, err := tp.orchestrator.GenerateEnsemble(context.Background(), &models.DesignRequest{RawInput: "row houses"}, 50)
	require.NoError(t, err)
	assert.Len(t, resp.Designs, 5, "fan-out capped at the configured maximum")

	resp, err = tp.orchestrator.GenerateEnsemble(context.Background(), &models.DesignRequest{RawInput: "twin bungalows"}, 0)
	require.NoError(t, err)
	assert.Len(t, resp.Designs, 1, "non-positive count coerced to one")
}

func TestGenerateEnsemble_OutOfRangeSelectionFallsBack(t *testing.T) {
	background := testBackground(t)
	tp := newTestPipeline(t,
		&stubPlanner{plan: testPlan()},
		&stubImager{fn: func(int) ([]byte, error) { return background, nil }},
		&stubEvaluator{selection: &models.Selection{BestIndex: 9, Reasoning: "hallucinated index"}},
	)

	resp, err := tp.orchestrator.GenerateEnsemble(context.Background(), &models.DesignRequest{RawInput: "penthouses"}, 2)
	require.NoError(t, err)
	assert.Equal(t, resp.Designs[0].ID, resp.BestDesignID, "invalid comparator index clamped to first candidate")
}
