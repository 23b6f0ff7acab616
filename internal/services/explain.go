package services

import (
	"slices"
	"strings"

	"alfredoptarigan/job-predictor/internal/models"
)

const GenericExplanation = "This role aligns with your profile."

type explanationRule struct {
	role    string
	reason  string
	matches func(profile models.Profile) bool
}

var explanationRules = []explanationRule{
	{
		role:   "data analyst",
		reason: "Your programming skills in Python/SQL match this role.",
		matches: func(p models.Profile) bool {
			return hasAny(p.Skills, "Python", "SQL")
		},
	},
	{
		role:   "software engineer",
		reason: "Your coding skills are suitable for Software Engineering.",
		matches: func(p models.Profile) bool {
			return hasAny(p.Skills, "Python", "Java", "C++", "Node.js", "React")
		},
	},
	{
		role:   "project manager",
		reason: "Your experience supports project management responsibilities.",
		matches: func(p models.Profile) bool {
			return p.Experience >= 3
		},
	},
	{
		role:   "hr",
		reason: "Your HR skills and certifications make you suitable for HR roles.",
		matches: func(p models.Profile) bool {
			return hasAny(p.Skills, "HR") || hasAny(p.Certifications, "HR")
		},
	},
	{
		role:   "finance",
		reason: "Your finance knowledge is valuable for this role.",
		matches: func(p models.Profile) bool {
			return hasAny(p.Skills, "Finance") || hasAny(p.Certifications, "Finance")
		},
	},
}

// Explain returns the reasons role fits profile, joined by a single space.
// Role names match case-insensitively; skill and certification tags match
// exactly.
func Explain(role string, profile models.Profile) string {
	role = strings.ToLower(role)

	var reasons []string
	for _, rule := range explanationRules {
		if rule.role == role && rule.matches(profile) {
			reasons = append(reasons, rule.reason)
		}
	}

	if len(reasons) == 0 {
		return GenericExplanation
	}
	return strings.Join(reasons, " ")
}

func hasAny(tags []string, wanted ...string) bool {
	for _, w := range wanted {
		if slices.Contains(tags, w) {
			return true
		}
	}
	return false
}
