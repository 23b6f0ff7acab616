package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/job-predictor/internal/models"
)

// Recorder accepts prediction records for persistence.
type Recorder interface {
	Record(ctx context.Context, record *models.PredictionRecord) error
}

type PredictionService interface {
	Predict(ctx context.Context, profile models.Profile) PredictionResult
}

type predictionService struct {
	encoder   FeatureEncoder
	predictor Predictor
	recorder  Recorder
	log       *zap.Logger
	now       func() time.Time
}

// NewPredictionService wires the prediction pipeline. recorder may be nil, in
// which case nothing is persisted.
func NewPredictionService(
	encoder FeatureEncoder,
	predictor Predictor,
	recorder Recorder,
	log *zap.Logger,
) PredictionService {
	return &predictionService{
		encoder:   encoder,
		predictor: predictor,
		recorder:  recorder,
		log:       log,
		now:       time.Now,
	}
}

func (s *predictionService) Predict(ctx context.Context, profile models.Profile) PredictionResult {
	vector, report := s.encoder.Encode(profile)
	for _, fallback := range report {
		s.log.Debug("feature encoding fell back to default",
			zap.String("field", fallback.Field),
			zap.String("reason", string(fallback.Reason)),
		)
	}

	result := s.predictor.Predict(vector, profile)
	if result.Degraded() {
		s.log.Warn("returning degraded prediction", zap.String("source", string(result.Source)))
	}

	s.persist(ctx, profile, result)

	return result
}

// persist is best effort: errors are logged and never reach the caller.
func (s *predictionService) persist(ctx context.Context, profile models.Profile, result PredictionResult) {
	if s.recorder == nil || profile.UserID == "" {
		return
	}

	record, err := s.buildRecord(profile, result)
	if err != nil {
		s.log.Error("failed to build prediction record", zap.String("user_id", profile.UserID), zap.Error(err))
		return
	}

	if err := s.recorder.Record(ctx, record); err != nil {
		s.log.Error("failed to record prediction", zap.String("user_id", profile.UserID), zap.Error(err))
	}
}

func (s *predictionService) buildRecord(profile models.Profile, result PredictionResult) (*models.PredictionRecord, error) {
	topJobs, err := json.Marshal(result.Jobs)
	if err != nil {
		return nil, err
	}

	var role string
	if len(result.Jobs) > 0 {
		role = result.Jobs[0].Job
	}

	return &models.PredictionRecord{
		UserID:    profile.UserID,
		CGPA:      profile.RawCGPA,
		Degree:    profile.Degree,
		Major:     profile.Major,
		Skills:    strings.Join(profile.Skills, ","),
		Role:      role,
		TopJobs:   string(topJobs),
		CreatedAt: s.now(),
	}, nil
}
