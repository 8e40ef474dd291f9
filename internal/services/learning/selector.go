package learning

import (
	"fmt"
	"math"
	"sort"

	"github.com/ternarybob/arbor"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/common"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/interfaces"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/models"
)

const selectionScanLimit = 5000

// SelectionOptions toggles the individual priority signals
type SelectionOptions struct {
	IncludeApproved       bool
	IncludeLowScores      bool
	IncludeRareCategories bool
}

// DefaultSelectionOptions enables every signal
func DefaultSelectionOptions() SelectionOptions {
	return SelectionOptions{
		IncludeApproved:       true,
		IncludeLowScores:      true,
		IncludeRareCategories: true,
	}
}

// distributions holds per-axis sample counts over one dataset scan
type distributions struct {
	category map[string]int
	platform map[string]int
	style    map[string]int
	total    int
}

// Selector ranks dataset samples by training value. Three signals feed the
// priority score: low AI evaluation (the model struggles there), low
// frequency (underrepresented data), and user feedback (confirmed quality,
// or confirmed failure, both informative).
type Selector struct {
	store  interfaces.SampleStore
	logger arbor.ILogger

	lowScoreWeight     float64
	lowFrequencyWeight float64
	approvedWeight     float64
	giniThreshold      float64
}

// NewSelector creates an active-learning selector over the sample store
func NewSelector(cfg *common.LearningConfig, store interfaces.SampleStore, logger arbor.ILogger) *Selector {
	return &Selector{
		store:              store,
		logger:             logger,
		lowScoreWeight:     cfg.LowScoreWeight,
		lowFrequencyWeight: cfg.LowFrequencyWeight,
		approvedWeight:     cfg.ApprovedWeight,
		giniThreshold:      cfg.GiniThreshold,
	}
}

// SelectForTraining returns the targetCount highest-priority samples
func (s *Selector) SelectForTraining(targetCount int, tenantID string, opts SelectionOptions) ([]*models.Sample, error) {
	samples, err := s.scan(tenantID)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, nil
	}

	dist := countDistributions(samples)

	type scored struct {
		priority float64
		sample   *models.Sample
	}
	ranked := make([]scored, 0, len(samples))
	for _, sample := range samples {
		ranked = append(ranked, scored{
			priority: s.PriorityScore(sample, dist, opts),
			sample:   sample,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].priority > ranked[j].priority
	})

	if targetCount > 0 && len(ranked) > targetCount {
		ranked = ranked[:targetCount]
	}
	result := make([]*models.Sample, len(ranked))
	for i, r := range ranked {
		result[i] = r.sample
	}

	s.logger.Info().
		Int("selected", len(result)).
		Int("scanned", len(samples)).
		Msg("Training samples selected")

	return result, nil
}

// PriorityScore computes the training priority of one sample
func (s *Selector) PriorityScore(sample *models.Sample, dist distributions, opts SelectionOptions) float64 {
	score := 0.0

	// Low AI score means the model needs work in this region
	if opts.IncludeLowScores && sample.EvaluationScores != nil {
		score += (10 - sample.EvaluationScores.Average()) * s.lowScoreWeight
	}

	// Low frequency means underrepresented data
	if opts.IncludeRareCategories && dist.total > 0 {
		catFreq := float64(dist.category[sample.Category]) / float64(dist.total)
		platFreq := float64(dist.platform[sample.Platform]) / float64(dist.total)
		styleFreq := float64(dist.style[sample.Style]) / float64(dist.total)
		avgFreq := (catFreq + platFreq + styleFreq) / 3
		score += (1 - avgFreq) * 10 * s.lowFrequencyWeight
	}

	// User feedback: approvals are confirmed quality, rejections teach
	// what not to do and still carry half weight
	if opts.IncludeApproved && sample.Feedback != nil {
		switch sample.Feedback.Type {
		case models.FeedbackApprove:
			score += 10 * s.approvedWeight
			rating := sample.Feedback.Rating
			if rating == 0 {
				rating = 3
			}
			score += float64(rating-3) * 0.5
		case models.FeedbackReject:
			score += 5 * s.approvedWeight
		}
	}

	// Corrections are explicit guidance
	if sample.Feedback != nil && len(sample.Feedback.Corrections) > 0 {
		score += 2
	}

	return score
}

// Underrepresented lists the category, platform, and style values whose
// share of the dataset falls below threshold, a fraction in (0,1).
func (s *Selector) Underrepresented(threshold float64, tenantID string) (map[string][]string, error) {
	samples, err := s.scan(tenantID)
	if err != nil {
		return nil, err
	}

	result := map[string][]string{
		"categories": {},
		"platforms":  {},
		"styles":     {},
	}
	if len(samples) == 0 {
		return result, nil
	}

	dist := countDistributions(samples)
	floor := float64(dist.total) * threshold

	result["categories"] = belowThreshold(dist.category, floor)
	result["platforms"] = belowThreshold(dist.platform, floor)
	result["styles"] = belowThreshold(dist.style, floor)
	return result, nil
}

// SuggestNextParams recommends generation parameters that would improve
// dataset balance, picking the rarest value on each unbalanced axis.
func (s *Selector) SuggestNextParams(tenantID string) (map[string]string, error) {
	samples, err := s.scan(tenantID)
	if err != nil {
		return nil, err
	}

	suggestions := make(map[string]string)
	if len(samples) == 0 {
		return suggestions, nil
	}

	dist := countDistributions(samples)
	if len(dist.category) > 1 {
		suggestions["category"] = rarest(dist.category)
	}
	if len(dist.platform) > 1 {
		suggestions["platform"] = rarest(dist.platform)
	}
	if len(dist.style) > 1 {
		suggestions["style"] = rarest(dist.style)
	}
	return suggestions, nil
}

// BalanceReport computes per-axis Gini coefficients and an overall balance
// score of (1 - average Gini) scaled to 0-100.
func (s *Selector) BalanceReport(tenantID string) (*models.BalanceReport, error) {
	samples, err := s.scan(tenantID)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return &models.BalanceReport{
			Recommendations: []string{"No data yet"},
		}, nil
	}

	dist := countDistributions(samples)
	catGini := Gini(dist.category)
	platGini := Gini(dist.platform)
	styleGini := Gini(dist.style)
	avgGini := (catGini + platGini + styleGini) / 3

	var recommendations []string
	if catGini > s.giniThreshold {
		if r := rarest(dist.category); r != "" {
			recommendations = append(recommendations, fmt.Sprintf("Generate more '%s' category samples", r))
		}
	}
	if platGini > s.giniThreshold {
		if r := rarest(dist.platform); r != "" {
			recommendations = append(recommendations, fmt.Sprintf("Generate more '%s' platform samples", r))
		}
	}
	if styleGini > s.giniThreshold {
		if r := rarest(dist.style); r != "" {
			recommendations = append(recommendations, fmt.Sprintf("Generate more '%s' style samples", r))
		}
	}
	if len(recommendations) == 0 {
		recommendations = []string{"Dataset is well balanced!"}
	}

	return &models.BalanceReport{
		BalanceScore:    math.Round((1-avgGini)*1000) / 10,
		CategoryGini:    math.Round(catGini*1000) / 1000,
		PlatformGini:    math.Round(platGini*1000) / 1000,
		StyleGini:       math.Round(styleGini*1000) / 1000,
		Recommendations: recommendations,
	}, nil
}

func (s *Selector) scan(tenantID string) ([]*models.Sample, error) {
	samples, err := s.store.List(models.SampleFilter{
		TenantID: tenantID,
		Limit:    selectionScanLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan dataset: %w", err)
	}

	// Soft-deleted samples never feed training
	active := samples[:0]
	for _, sample := range samples {
		if !sample.Deleted() {
			active = append(active, sample)
		}
	}
	return active, nil
}

func countDistributions(samples []*models.Sample) distributions {
	dist := distributions{
		category: make(map[string]int),
		platform: make(map[string]int),
		style:    make(map[string]int),
		total:    len(samples),
	}
	for _, s := range samples {
		dist.category[s.Category]++
		dist.platform[s.Platform]++
		dist.style[s.Style]++
	}
	return dist
}

func belowThreshold(counts map[string]int, threshold float64) []string {
	var result []string
	for k, v := range counts {
		if float64(v) < threshold {
			result = append(result, k)
		}
	}
	sort.Strings(result)
	return result
}
