package services

import (
	"alfredoptarigan/job-predictor/internal/models"
)

// Fixture layout: 5 scalar columns, 3 skill columns, 3 certification columns.
const fixtureWidth = 5 + 3 + 3

func fixtureArtifacts() *Artifacts {
	return &Artifacts{
		LabelEncoders: map[string]*LabelEncoder{
			EncoderDegree:   NewLabelEncoder([]string{"B.Tech", "M.Tech", "MBA"}),
			EncoderMajor:    NewLabelEncoder([]string{"CS", "Finance", "HR"}),
			EncoderIndustry: NewLabelEncoder([]string{"Finance", "HR", "IT"}),
		},
		SkillsEncoder: NewMultiLabelBinarizer([]string{"Java", "Python", "SQL"}),
		CertsEncoder:  NewMultiLabelBinarizer([]string{"AWS", "HR", "PMP"}),
		TargetDecoder: NewLabelEncoder([]string{"Data Analyst", "Finance", "HR", "Project Manager", "Software Engineer"}),
	}
}

func fullProfile() models.Profile {
	return models.Profile{
		Degree:         "M.Tech",
		Major:          "CS",
		Industry:       "IT",
		CGPA:           8.5,
		Experience:     2,
		Skills:         []string{"Python", "SQL"},
		Certifications: []string{"AWS"},
		UserID:         "7",
		RawCGPA:        "8.5",
	}
}

// stubClassifier returns fixed probabilities or a fixed error.
type stubClassifier struct {
	probs   []float64
	classes []int
	err     error
	panics  bool
	calls   int
}

func (s *stubClassifier) PredictProba(_ []float64) ([]float64, error) {
	s.calls++
	if s.panics {
		panic("index out of range")
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.probs, nil
}

func (s *stubClassifier) Classes() []int {
	return s.classes
}
