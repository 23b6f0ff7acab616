package services

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"alfredoptarigan/job-predictor/internal/models"
)

// TopN is the maximum number of ranked roles returned.
const TopN = 3

// Source tells where a PredictionResult came from.
type Source string

const (
	SourceModel         Source = "model"
	SourceUnavailable   Source = "unavailable"
	SourceScoringFailed Source = "scoring_failed"
)

// PlaceholderJobs is returned when the classifier or target decoder is not
// loaded. The content is not a prediction.
//
// Returning placeholders keeps the endpoint from ever failing. A stricter API
// would return a typed "model unavailable" error instead.
var PlaceholderJobs = []models.JobPrediction{
	{Job: "Software Developer", Confidence: 0.9, Explanation: "Placeholder result: the prediction model is not loaded."},
	{Job: "Data Analyst", Confidence: 0.85, Explanation: "Placeholder result: the prediction model is not loaded."},
	{Job: "Project Manager", Confidence: 0.8, Explanation: "Placeholder result: the prediction model is not loaded."},
}

// ScoringFallbackJobs is returned when scoring or decoding fails.
var ScoringFallbackJobs = []models.JobPrediction{
	{Job: "Software Developer", Confidence: 0.5, Explanation: "Fallback result: the prediction could not be computed."},
	{Job: "Data Analyst", Confidence: 0.4, Explanation: "Fallback result: the prediction could not be computed."},
}

type PredictionResult struct {
	Jobs   []models.JobPrediction
	Source Source
}

// Degraded reports whether the jobs are a fixed fallback set.
func (r PredictionResult) Degraded() bool {
	return r.Source != SourceModel
}

type Predictor interface {
	Predict(vector models.FeatureVector, profile models.Profile) PredictionResult
}

type predictor struct {
	classifier Classifier
	decoder    *LabelEncoder
	log        *zap.Logger
}

func NewPredictor(artifacts *Artifacts, log *zap.Logger) Predictor {
	return &predictor{
		classifier: artifacts.Classifier,
		decoder:    artifacts.TargetDecoder,
		log:        log,
	}
}

func (p *predictor) Predict(vector models.FeatureVector, profile models.Profile) PredictionResult {
	if p.classifier == nil || p.decoder == nil {
		return PredictionResult{Jobs: clone(PlaceholderJobs), Source: SourceUnavailable}
	}

	jobs, err := p.rank(vector, profile)
	if err != nil {
		p.log.Error("prediction scoring failed, returning fallback result",
			zap.Int("features", len(vector)),
			zap.Error(err),
		)
		return PredictionResult{Jobs: clone(ScoringFallbackJobs), Source: SourceScoringFailed}
	}

	return PredictionResult{Jobs: jobs, Source: SourceModel}
}

func (p *predictor) rank(vector models.FeatureVector, profile models.Profile) (jobs []models.JobPrediction, err error) {
	defer func() {
		if r := recover(); r != nil {
			jobs, err = nil, fmt.Errorf("classifier panicked: %v", r)
		}
	}()

	probs, err := p.classifier.PredictProba(vector)
	if err != nil {
		return nil, fmt.Errorf("failed to score features: %w", err)
	}

	classes := p.classifier.Classes()
	if len(probs) != len(classes) {
		return nil, fmt.Errorf("classifier returned %d probabilities for %d classes", len(probs), len(classes))
	}
	if len(probs) == 0 {
		return nil, fmt.Errorf("classifier returned no probabilities")
	}
	for i, prob := range probs {
		if math.IsNaN(prob) || prob < 0 || prob > 1 {
			return nil, fmt.Errorf("class %d has invalid probability %v", classes[i], prob)
		}
	}

	order := make([]int, len(probs))
	for i := range order {
		order[i] = i
	}
	// Stable sort keeps the lower class index first on exact ties.
	sort.SliceStable(order, func(a, b int) bool {
		return probs[order[a]] > probs[order[b]]
	})

	n := min(TopN, len(order))
	jobs = make([]models.JobPrediction, 0, n)
	for _, idx := range order[:n] {
		role, err := p.decoder.InverseTransform(classes[idx])
		if err != nil {
			return nil, fmt.Errorf("failed to decode class: %w", err)
		}

		jobs = append(jobs, models.JobPrediction{
			Job:         role,
			Confidence:  probs[idx],
			Explanation: Explain(role, profile),
		})
	}

	return jobs, nil
}

func clone(jobs []models.JobPrediction) []models.JobPrediction {
	return append([]models.JobPrediction(nil), jobs...)
}
