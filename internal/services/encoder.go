package services

import (
	"alfredoptarigan/job-predictor/internal/models"
)

// DefaultListWidth is the zero-vector width used for a list field whose
// encoder is not loaded, so its real width cannot be asked.
const DefaultListWidth = 5

// UnknownCategory is substituted for an unseen categorical value or a missing
// categorical encoder. It is also a valid trained index (the first class in
// sorted order), so the model cannot tell "unknown" from that class. Changing
// the substitute would change predictions, so it stays 0.
const UnknownCategory = 0

// FallbackReason names the default an encoding step fell back to.
type FallbackReason string

const (
	FallbackEncoderMissing  FallbackReason = "encoder_missing"
	FallbackUnseenValue     FallbackReason = "unseen_value"
	FallbackMalformedNumber FallbackReason = "malformed_number"
	FallbackMalformedList   FallbackReason = "malformed_list"
	FallbackUnseenTags      FallbackReason = "unseen_tags"
)

type EncodingFallback struct {
	Field  string
	Reason FallbackReason
}

// EncodingReport lists every fallback taken while encoding one profile.
type EncodingReport []EncodingFallback

func (r EncodingReport) Has(field string, reason FallbackReason) bool {
	for _, f := range r {
		if f.Field == field && f.Reason == reason {
			return true
		}
	}
	return false
}

type FeatureEncoder interface {
	// Encode never fails. Fields that cannot be encoded are replaced by their
	// defaults and reported.
	Encode(profile models.Profile) (models.FeatureVector, EncodingReport)
}

type featureEncoder struct {
	labelEncoders map[string]*LabelEncoder
	skillsEncoder *MultiLabelBinarizer
	certsEncoder  *MultiLabelBinarizer
}

func NewFeatureEncoder(artifacts *Artifacts) FeatureEncoder {
	return &featureEncoder{
		labelEncoders: artifacts.LabelEncoders,
		skillsEncoder: artifacts.SkillsEncoder,
		certsEncoder:  artifacts.CertsEncoder,
	}
}

// Encode lays features out as degree, major, cgpa, experience, industry, then
// the skills indicators, then the certification indicators.
func (e *featureEncoder) Encode(profile models.Profile) (models.FeatureVector, EncodingReport) {
	var report EncodingReport

	degree := e.encodeCategory(EncoderDegree, models.FieldDegree, profile.Degree, &report)
	major := e.encodeCategory(EncoderMajor, models.FieldMajor, profile.Major, &report)
	cgpa := encodeNumber(models.FieldCGPA, profile, profile.CGPA, &report)
	experience := encodeNumber(models.FieldExperience, profile, profile.Experience, &report)
	industry := e.encodeCategory(EncoderIndustry, models.FieldIndustry, profile.Industry, &report)

	skills := encodeTags(e.skillsEncoder, models.FieldSkills, profile, profile.Skills, &report)
	certs := encodeTags(e.certsEncoder, models.FieldCertifications, profile, profile.Certifications, &report)

	vector := make(models.FeatureVector, 0, 5+len(skills)+len(certs))
	vector = append(vector, float64(degree), float64(major), cgpa, experience, float64(industry))
	vector = append(vector, skills...)
	vector = append(vector, certs...)

	return vector, report
}

func (e *featureEncoder) encodeCategory(encoderKey, field, value string, report *EncodingReport) int {
	encoder := e.labelEncoders[encoderKey]
	if encoder == nil {
		*report = append(*report, EncodingFallback{Field: field, Reason: FallbackEncoderMissing})
		return UnknownCategory
	}

	id, err := encoder.Transform(value)
	if err != nil {
		*report = append(*report, EncodingFallback{Field: field, Reason: FallbackUnseenValue})
		return UnknownCategory
	}
	return id
}

// encodeNumber relies on profile decoding having zeroed malformed values.
func encodeNumber(field string, profile models.Profile, value float64, report *EncodingReport) float64 {
	if profile.IsMalformed(field) {
		*report = append(*report, EncodingFallback{Field: field, Reason: FallbackMalformedNumber})
		return 0
	}
	return value
}

func encodeTags(encoder *MultiLabelBinarizer, field string, profile models.Profile, tags []string, report *EncodingReport) []float64 {
	if encoder == nil {
		*report = append(*report, EncodingFallback{Field: field, Reason: FallbackEncoderMissing})
		return make([]float64, DefaultListWidth)
	}

	if profile.IsMalformed(field) {
		*report = append(*report, EncodingFallback{Field: field, Reason: FallbackMalformedList})
		return make([]float64, encoder.Width())
	}

	indicators, err := encoder.Transform(tags)
	if err != nil {
		*report = append(*report, EncodingFallback{Field: field, Reason: FallbackUnseenTags})
		return make([]float64, encoder.Width())
	}
	return indicators
}
