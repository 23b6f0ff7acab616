package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alfredoptarigan/job-predictor/internal/models"
)

const (
	linearModelJSON = `{
		"kind": "linear",
		"classes": [0, 1, 2],
		"coef": [
			[0, 0, 0, 0, 0, 0, 2, 2, 0, 0],
			[0, 0, 0, 0.5, 0, 0, 0, 0, 0, 1],
			[0, 0, 0, 0, 0, 1, 0, 0, 0, 0]
		],
		"intercept": [0, 0, 0]
	}`
	targetEncoderJSON   = `{"classes": ["Data Analyst", "Project Manager", "Software Engineer"]}`
	featureEncodersJSON = `{
		"label_encoders": {
			"Degree": {"classes": ["B.Tech", "MBA"]},
			"Major": {"classes": ["CS", "Finance"]},
			"IndustryPreference": {"classes": ["Finance", "IT"]}
		},
		"skills_encoder": {"classes": ["Java", "Python", "SQL"]},
		"certs_encoder": {"classes": ["AWS", "PMP"]}
	}`
)

func writeArtifacts(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestLoadArtifacts(t *testing.T) {
	dir := writeArtifacts(t, map[string]string{
		ClassifierFile:      linearModelJSON,
		TargetEncoderFile:   targetEncoderJSON,
		FeatureEncodersFile: featureEncodersJSON,
	})

	artifacts := LoadArtifacts(NewStorageService(dir), zap.NewNop())

	status := artifacts.Status()
	assert.True(t, status.Classifier)
	assert.True(t, status.TargetDecoder)
	assert.Equal(t, []string{EncoderDegree, EncoderMajor, EncoderIndustry}, status.LabelEncoders)
	assert.True(t, status.SkillsEncoder)
	assert.True(t, status.CertsEncoder)

	profile := models.Profile{Degree: "MBA", Skills: []string{"Python"}, Experience: 1}
	vector, report := NewFeatureEncoder(artifacts).Encode(profile)
	require.Len(t, vector, 5+3+2)
	assert.Equal(t, 1.0, vector[0])

	result := NewPredictor(artifacts, zap.NewNop()).Predict(vector, profile)
	require.Equal(t, SourceModel, result.Source, "report: %+v", report)
	require.Len(t, result.Jobs, 3)
	assert.Equal(t, "Data Analyst", result.Jobs[0].Job)
}

func TestLoadArtifactsForest(t *testing.T) {
	dir := writeArtifacts(t, map[string]string{
		ClassifierFile: `{
			"kind": "forest",
			"classes": [0, 1],
			"n_features": 1,
			"trees": [{
				"children_left": [1, -1, -1],
				"children_right": [2, -1, -1],
				"feature": [0, -2, -2],
				"threshold": [0.5, -2, -2],
				"value": [[2, 2], [2, 0], [0, 2]]
			}]
		}`,
		TargetEncoderFile: `{"classes": ["HR", "Finance"]}`,
	})

	artifacts := LoadArtifacts(NewStorageService(dir), zap.NewNop())
	require.NotNil(t, artifacts.Classifier)

	probs, err := artifacts.Classifier.PredictProba([]float64{1})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, probs)
}

func TestLoadArtifactsMissingDirectory(t *testing.T) {
	artifacts := LoadArtifacts(NewStorageService(filepath.Join(t.TempDir(), "absent")), zap.NewNop())

	assert.Nil(t, artifacts.Classifier)
	assert.Nil(t, artifacts.TargetDecoder)
	assert.Nil(t, artifacts.SkillsEncoder)
	assert.Nil(t, artifacts.CertsEncoder)
	assert.Empty(t, artifacts.LabelEncoders)
	assert.Empty(t, artifacts.Status().Unreadable)
	assert.NotNil(t, artifacts.Status().Unreadable)

	result := NewPredictor(artifacts, zap.NewNop()).Predict(nil, models.Profile{})
	assert.Equal(t, SourceUnavailable, result.Source)
}

func TestLoadArtifactsPartialFailure(t *testing.T) {
	testCases := []struct {
		name       string
		classifier string
	}{
		{name: "corrupt json", classifier: `{"kind": "linear", `},
		{name: "unknown kind", classifier: `{"kind": "svm", "classes": [0]}`},
		{name: "single class", classifier: `{"kind": "linear", "classes": [0], "coef": [[1]], "intercept": [0]}`},
		{name: "bad shape", classifier: `{"kind": "linear", "classes": [0, 1, 2], "coef": [[1]], "intercept": [0]}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := writeArtifacts(t, map[string]string{
				ClassifierFile:      tc.classifier,
				TargetEncoderFile:   targetEncoderJSON,
				FeatureEncodersFile: featureEncodersJSON,
			})

			artifacts := LoadArtifacts(NewStorageService(dir), zap.NewNop())

			assert.Nil(t, artifacts.Classifier)
			assert.NotNil(t, artifacts.TargetDecoder)
			assert.NotNil(t, artifacts.SkillsEncoder)
			assert.Equal(t, []string{ClassifierFile}, artifacts.Status().Unreadable)
		})
	}
}

func TestLoadArtifactsEmptyTargetEncoder(t *testing.T) {
	dir := writeArtifacts(t, map[string]string{TargetEncoderFile: `{"classes": []}`})

	artifacts := LoadArtifacts(NewStorageService(dir), zap.NewNop())

	assert.Nil(t, artifacts.TargetDecoder)
	assert.Equal(t, []string{TargetEncoderFile}, artifacts.Status().Unreadable)
}

func TestLoadArtifactsPartialFeatureEncoders(t *testing.T) {
	dir := writeArtifacts(t, map[string]string{
		FeatureEncodersFile: `{"label_encoders": {"Degree": {"classes": ["MBA"]}}, "skills_encoder": {"classes": ["SQL"]}}`,
	})

	artifacts := LoadArtifacts(NewStorageService(dir), zap.NewNop())

	assert.Equal(t, []string{EncoderDegree}, artifacts.Status().LabelEncoders)
	assert.NotNil(t, artifacts.SkillsEncoder)
	assert.Nil(t, artifacts.CertsEncoder)

	vector, _ := NewFeatureEncoder(artifacts).Encode(models.Profile{Skills: []string{"SQL"}})
	assert.Len(t, vector, 5+1+DefaultListWidth)
}

func TestStorageService(t *testing.T) {
	dir := writeArtifacts(t, map[string]string{TargetEncoderFile: targetEncoderJSON})
	storage := NewStorageService(dir)

	assert.True(t, storage.Exists(TargetEncoderFile))
	assert.False(t, storage.Exists(ClassifierFile))
	assert.False(t, storage.Exists(""))
	assert.Equal(t, filepath.Join(dir, TargetEncoderFile), storage.GetFilePath(TargetEncoderFile))

	data, err := storage.ReadFile(TargetEncoderFile)
	require.NoError(t, err)
	assert.JSONEq(t, targetEncoderJSON, string(data))

	_, err = storage.ReadFile(ClassifierFile)
	assert.ErrorIs(t, err, ErrArtifactNotFound)
}
