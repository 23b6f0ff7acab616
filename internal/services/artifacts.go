package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Categorical encoder keys in feature_encoders.json.
const (
	EncoderDegree   = "Degree"
	EncoderMajor    = "Major"
	EncoderIndustry = "IndustryPreference"
)

// Artifacts is the model state loaded once at startup and shared read-only by
// every request. Any field may be nil when its artifact is missing.
type Artifacts struct {
	Classifier    Classifier
	TargetDecoder *LabelEncoder
	LabelEncoders map[string]*LabelEncoder
	SkillsEncoder *MultiLabelBinarizer
	CertsEncoder  *MultiLabelBinarizer

	// Unreadable lists artifact files that are present but failed to load.
	Unreadable []string
}

type ArtifactStatus struct {
	Classifier    bool     `json:"classifier"`
	TargetDecoder bool     `json:"target_decoder"`
	LabelEncoders []string `json:"label_encoders"`
	SkillsEncoder bool     `json:"skills_encoder"`
	CertsEncoder  bool     `json:"certs_encoder"`
	Unreadable    []string `json:"unreadable"`
}

func (a *Artifacts) Status() ArtifactStatus {
	status := ArtifactStatus{
		Classifier:    a.Classifier != nil,
		TargetDecoder: a.TargetDecoder != nil,
		LabelEncoders: []string{},
		SkillsEncoder: a.SkillsEncoder != nil,
		CertsEncoder:  a.CertsEncoder != nil,
		Unreadable:    append([]string{}, a.Unreadable...),
	}
	for _, key := range []string{EncoderDegree, EncoderMajor, EncoderIndustry} {
		if a.LabelEncoders[key] != nil {
			status.LabelEncoders = append(status.LabelEncoders, key)
		}
	}
	return status
}

type classesFile struct {
	Classes []string `json:"classes"`
}

type classifierFile struct {
	Kind      string         `json:"kind"`
	Classes   []int          `json:"classes"`
	NFeatures int            `json:"n_features"`
	Coef      [][]float64    `json:"coef"`
	Intercept []float64      `json:"intercept"`
	Trees     []DecisionTree `json:"trees"`
}

type featureEncodersFile struct {
	LabelEncoders map[string]classesFile `json:"label_encoders"`
	SkillsEncoder *classesFile           `json:"skills_encoder"`
	CertsEncoder  *classesFile           `json:"certs_encoder"`
}

// LoadArtifacts reads every artifact it can find. A missing or unreadable
// artifact is logged and left nil; loading itself never fails.
func LoadArtifacts(storage StorageService, log *zap.Logger) *Artifacts {
	artifacts := &Artifacts{LabelEncoders: map[string]*LabelEncoder{}}

	classifier, err := loadClassifier(storage)
	if err != nil {
		artifacts.recordFailure(storage, log, ClassifierFile, err)
	} else {
		artifacts.Classifier = classifier
	}

	decoder, err := loadTargetDecoder(storage)
	if err != nil {
		artifacts.recordFailure(storage, log, TargetEncoderFile, err)
	} else {
		artifacts.TargetDecoder = decoder
	}

	encoders, err := loadFeatureEncoders(storage)
	if err != nil {
		artifacts.recordFailure(storage, log, FeatureEncodersFile, err)
	} else {
		for key, enc := range encoders.LabelEncoders {
			artifacts.LabelEncoders[key] = NewLabelEncoder(enc.Classes)
		}
		if encoders.SkillsEncoder != nil {
			artifacts.SkillsEncoder = NewMultiLabelBinarizer(encoders.SkillsEncoder.Classes)
		}
		if encoders.CertsEncoder != nil {
			artifacts.CertsEncoder = NewMultiLabelBinarizer(encoders.CertsEncoder.Classes)
		}
	}

	status := artifacts.Status()
	if status.Classifier && status.TargetDecoder {
		log.Info("model and encoders loaded",
			zap.Int("classes", artifacts.TargetDecoder.Len()),
			zap.Strings("label_encoders", status.LabelEncoders),
			zap.Bool("skills_encoder", status.SkillsEncoder),
			zap.Bool("certs_encoder", status.CertsEncoder),
		)
	} else {
		log.Warn("model or target decoder not loaded, predictions will use placeholder results",
			zap.String("model_dir", storage.GetFilePath("")),
		)
	}

	return artifacts
}

func (a *Artifacts) recordFailure(storage StorageService, log *zap.Logger, file string, err error) {
	if errors.Is(err, ErrArtifactNotFound) || !storage.Exists(file) {
		log.Warn("artifact not found", zap.String("file", file))
		return
	}
	a.Unreadable = append(a.Unreadable, file)
	log.Error("failed to load artifact", zap.String("file", file), zap.Error(err))
}

func loadClassifier(storage StorageService) (Classifier, error) {
	data, err := storage.ReadFile(ClassifierFile)
	if err != nil {
		return nil, err
	}

	var file classifierFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode classifier: %w", err)
	}

	switch file.Kind {
	case "linear":
		classifier, err := NewLinearClassifier(file.Classes, file.Coef, file.Intercept)
		if err != nil {
			return nil, err
		}
		return classifier, nil
	case "forest":
		classifier, err := NewForestClassifier(file.Classes, file.NFeatures, file.Trees)
		if err != nil {
			return nil, err
		}
		return classifier, nil
	default:
		return nil, fmt.Errorf("unsupported classifier kind %q", file.Kind)
	}
}

func loadTargetDecoder(storage StorageService) (*LabelEncoder, error) {
	data, err := storage.ReadFile(TargetEncoderFile)
	if err != nil {
		return nil, err
	}

	var file classesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode target encoder: %w", err)
	}
	if len(file.Classes) == 0 {
		return nil, errors.New("target encoder has no classes")
	}
	return NewLabelEncoder(file.Classes), nil
}

func loadFeatureEncoders(storage StorageService) (*featureEncodersFile, error) {
	data, err := storage.ReadFile(FeatureEncodersFile)
	if err != nil {
		return nil, err
	}

	var file featureEncodersFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode feature encoders: %w", err)
	}
	return &file, nil
}
