package models

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// Request field names accepted on the prediction endpoint.
const (
	FieldDegree         = "degree"
	FieldMajor          = "major"
	FieldIndustry       = "industry"
	FieldCGPA           = "cgpa"
	FieldExperience     = "experience"
	FieldSkills         = "skills"
	FieldCertifications = "certifications"
	FieldUserID         = "user_id"
)

// Profile is a candidate profile submitted for prediction. Absent fields keep
// their zero values.
type Profile struct {
	Degree         string
	Major          string
	Industry       string
	CGPA           float64
	Experience     float64
	Skills         []string
	Certifications []string
	UserID         string

	// RawCGPA is the cgpa exactly as submitted, kept for the prediction record.
	RawCGPA string

	// Malformed lists the fields whose submitted value could not be coerced
	// and was replaced by its zero value.
	Malformed []string
}

// ProfileFromMap decodes a loosely typed JSON object into a Profile. It never
// fails: every field that cannot be coerced is zeroed and listed in Malformed.
func ProfileFromMap(raw map[string]interface{}) Profile {
	var p Profile

	p.Degree = p.stringField(raw, FieldDegree)
	p.Major = p.stringField(raw, FieldMajor)
	p.Industry = p.stringField(raw, FieldIndustry)
	p.CGPA = p.floatField(raw, FieldCGPA)
	p.Experience = p.floatField(raw, FieldExperience)
	p.Skills = p.listField(raw, FieldSkills)
	p.Certifications = p.listField(raw, FieldCertifications)
	p.UserID = p.stringField(raw, FieldUserID)

	if v, ok := raw[FieldCGPA]; ok && v != nil {
		p.RawCGPA = cast.ToString(v)
	}

	return p
}

// IsMalformed reports whether field was replaced by its default during decoding.
func (p Profile) IsMalformed(field string) bool {
	for _, f := range p.Malformed {
		if f == field {
			return true
		}
	}
	return false
}

func (p *Profile) stringField(raw map[string]interface{}, field string) string {
	v, ok := raw[field]
	if !ok || v == nil {
		return ""
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		p.Malformed = append(p.Malformed, field)
		return ""
	}
	return s
}

func (p *Profile) floatField(raw map[string]interface{}, field string) float64 {
	v, ok := raw[field]
	if !ok || v == nil {
		return 0
	}

	if s, isString := v.(string); isString {
		v = strings.TrimSpace(s)
		if v == "" {
			return 0
		}
	}

	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		p.Malformed = append(p.Malformed, field)
		return 0
	}
	return f
}

// listField accepts a JSON array or a comma-delimited string.
func (p *Profile) listField(raw map[string]interface{}, field string) []string {
	v, ok := raw[field]
	if !ok || v == nil {
		return []string{}
	}

	switch val := v.(type) {
	case string:
		return splitTags(val)
	case []string:
		return val
	case []interface{}:
		tags := make([]string, 0, len(val))
		for _, item := range val {
			s, err := cast.ToStringE(item)
			if err != nil {
				p.Malformed = append(p.Malformed, field)
				return []string{}
			}
			tags = append(tags, s)
		}
		return tags
	default:
		p.Malformed = append(p.Malformed, field)
		return []string{}
	}
}

func splitTags(s string) []string {
	tags := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}
