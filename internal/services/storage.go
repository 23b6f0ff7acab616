package services

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Artifact file names inside the model directory.
const (
	ClassifierFile      = "jobrole_model.json"
	TargetEncoderFile   = "label_encoder.json"
	FeatureEncodersFile = "feature_encoders.json"
)

var ErrArtifactNotFound = errors.New("artifact not found")

type StorageService interface {
	GetFilePath(filename string) string
	Exists(filename string) bool
	ReadFile(filename string) ([]byte, error)
}

type storageService struct {
	modelPath string
}

func NewStorageService(modelPath string) StorageService {
	return &storageService{
		modelPath: modelPath,
	}
}

func (s *storageService) GetFilePath(filename string) string {
	return filepath.Join(s.modelPath, filename)
}

func (s *storageService) Exists(filename string) bool {
	info, err := os.Stat(s.GetFilePath(filename))
	return err == nil && !info.IsDir()
}

func (s *storageService) ReadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(s.GetFilePath(filename))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", filename, ErrArtifactNotFound)
		}
		return nil, fmt.Errorf("failed to read artifact %s: %w", filename, err)
	}
	return data, nil
}
