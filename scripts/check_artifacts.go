package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"alfredoptarigan/job-predictor/internal/config"
	applog "alfredoptarigan/job-predictor/internal/logger"
	"alfredoptarigan/job-predictor/internal/models"
	"alfredoptarigan/job-predictor/internal/services"
)

// check_artifacts loads the model directory and runs one prediction, so an
// exported model can be verified before the API is restarted with it.
//
//	go run ./scripts [profile.json]
func main() {
	cfg, _ := config.Load()

	zl, err := applog.New(false, true)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	storageService := services.NewStorageService(cfg.Model.Dir)
	artifacts := services.LoadArtifacts(storageService, zl)

	raw := map[string]interface{}{
		"degree":         "B.Tech",
		"major":          "Computer Science",
		"industry":       "IT",
		"cgpa":           8.0,
		"experience":     2,
		"skills":         []interface{}{"Python", "SQL"},
		"certifications": []interface{}{},
	}
	if len(os.Args) > 1 {
		data, err := os.ReadFile(os.Args[1])
		if err != nil {
			zl.Fatal("failed to read profile", zap.Error(err))
		}
		raw = nil
		if err := json.Unmarshal(data, &raw); err != nil {
			zl.Fatal("failed to decode profile", zap.Error(err))
		}
	}

	encoder := services.NewFeatureEncoder(artifacts)
	predictor := services.NewPredictor(artifacts, zl)
	predictionService := services.NewPredictionService(encoder, predictor, nil, zl)

	profile := models.ProfileFromMap(raw)
	vector, report := encoder.Encode(profile)
	zl.Info("profile encoded", zap.Int("features", len(vector)), zap.Int("fallbacks", len(report)))

	result := predictionService.Predict(context.Background(), profile)

	out, _ := json.MarshalIndent(models.PredictResponse{TopJobs: result.Jobs}, "", "  ")
	fmt.Println(string(out))

	if result.Degraded() {
		zl.Warn("prediction is degraded", zap.String("source", string(result.Source)))
		os.Exit(1)
	}
}
