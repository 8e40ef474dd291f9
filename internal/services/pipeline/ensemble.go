package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/models"
)

type ensembleResult struct {
	index    int
	response *models.DesignResponse
	raw      []byte
	err      error
}

// GenerateEnsemble runs numVariations independent pipeline executions in
// parallel and picks the best candidate. Failed branches are dropped;
// the run fails only when every branch fails.
func (o *Orchestrator) GenerateEnsemble(ctx context.Context, req *models.DesignRequest, numVariations int) (*models.MultiDesignResponse, error) {
	req.ApplyDefaults()

	if numVariations < 1 {
		numVariations = 1
	}
	if numVariations > o.maxVariations {
		numVariations = o.maxVariations
	}

	startTime := time.Now()
	o.logger.Info().
		Int("variations", numVariations).
		Str("category", req.Category).
		Msg("Ensemble generation started")

	results := make([]ensembleResult, numVariations)
	var wg sync.WaitGroup
	for i := 0; i < numVariations; i++ {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			// Each branch gets its own request copy so defaults and
			// downstream mutation never race.
			branchReq := *req
			resp, raw, err := o.run(ctx, &branchReq)
			results[index] = ensembleResult{index: index, response: resp, raw: raw, err: err}
		}(i)
	}
	wg.Wait()

	var succeeded []ensembleResult
	for _, r := range results {
		if r.err != nil {
			o.logger.Warn().
				Err(r.err).
				Int("variation", r.index).
				Msg("Ensemble variation failed")
			continue
		}
		succeeded = append(succeeded, r)
	}

	if len(succeeded) == 0 {
		return nil, NewEnsembleFailedError(fmt.Errorf("%d of %d variations failed", numVariations, numVariations))
	}

	selection := &models.Selection{
		BestIndex: 0,
		Reasoning: "First successful generation",
	}
	if len(succeeded) > 1 {
		images := make([][]byte, len(succeeded))
		for i, r := range succeeded {
			images[i] = r.raw
		}
		compared, err := o.evaluator.CompareDesigns(ctx, images, req.Category, req.Platform)
		if err != nil {
			o.logger.Warn().Err(err).Msg("Design comparison failed, keeping first candidate")
		} else {
			selection = compared
		}
	}
	if selection.BestIndex < 0 || selection.BestIndex >= len(succeeded) {
		selection.BestIndex = 0
	}

	designs := make([]*models.DesignResponse, len(succeeded))
	for i, r := range succeeded {
		designs[i] = r.response
	}

	o.logger.Info().
		Int("succeeded", len(succeeded)).
		Int("requested", numVariations).
		Str("best_design_id", designs[selection.BestIndex].ID).
		Dur("duration", time.Since(startTime)).
		Msg("Ensemble generation completed")

	return &models.MultiDesignResponse{
		Designs:            designs,
		BestDesignID:       designs[selection.BestIndex].ID,
		SelectionReasoning: selection.Reasoning,
	}, nil
}
