package models

import "time"

// FeatureVector is the numeric encoding of a Profile in training column order.
type FeatureVector []float64

type JobPrediction struct {
	Job         string  `json:"job"`
	Confidence  float64 `json:"confidence"`
	Explanation string  `json:"explanation"`
}

type PredictResponse struct {
	TopJobs []JobPrediction `json:"top_jobs"`
}

type PredictionHistoryItem struct {
	ID      string          `json:"id"`
	UserID  string          `json:"user_id"`
	CGPA    string          `json:"cgpa"`
	Degree  string          `json:"degree"`
	Major   string          `json:"major"`
	Skills  string          `json:"skills"`
	Role    string          `json:"role"`
	TopJobs []JobPrediction `json:"top_jobs"`
	Date    time.Time       `json:"date"`
}
