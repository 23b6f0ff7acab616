package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"alfredoptarigan/job-predictor/internal/models"
)

func TestExplain(t *testing.T) {
	testCases := []struct {
		name    string
		role    string
		profile models.Profile
		want    string
	}{
		{
			name:    "data analyst with python",
			role:    "Data Analyst",
			profile: models.Profile{Skills: []string{"Python"}},
			want:    "Your programming skills in Python/SQL match this role.",
		},
		{
			name:    "data analyst with sql, role in upper case",
			role:    "DATA ANALYST",
			profile: models.Profile{Skills: []string{"Excel", "SQL"}},
			want:    "Your programming skills in Python/SQL match this role.",
		},
		{
			name:    "data analyst without programming skills",
			role:    "Data Analyst",
			profile: models.Profile{Skills: []string{"Excel"}},
			want:    GenericExplanation,
		},
		{
			name:    "software engineer with react",
			role:    "software engineer",
			profile: models.Profile{Skills: []string{"React"}},
			want:    "Your coding skills are suitable for Software Engineering.",
		},
		{
			name:    "software engineer tags are case sensitive",
			role:    "Software Engineer",
			profile: models.Profile{Skills: []string{"java"}},
			want:    GenericExplanation,
		},
		{
			name:    "project manager with three years",
			role:    "Project Manager",
			profile: models.Profile{Experience: 3},
			want:    "Your experience supports project management responsibilities.",
		},
		{
			name:    "project manager below threshold",
			role:    "Project Manager",
			profile: models.Profile{Experience: 2.9},
			want:    GenericExplanation,
		},
		{
			name:    "hr via certification",
			role:    "HR",
			profile: models.Profile{Certifications: []string{"HR"}},
			want:    "Your HR skills and certifications make you suitable for HR roles.",
		},
		{
			name:    "hr with nothing",
			role:    "HR",
			profile: models.Profile{Skills: []string{}, Certifications: []string{}},
			want:    GenericExplanation,
		},
		{
			name:    "finance via skill",
			role:    "Finance",
			profile: models.Profile{Skills: []string{"Finance"}},
			want:    "Your finance knowledge is valuable for this role.",
		},
		{
			name:    "role without rules",
			role:    "Graphic Designer",
			profile: models.Profile{Skills: []string{"Python"}, Experience: 10},
			want:    GenericExplanation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Explain(tc.role, tc.profile))
		})
	}
}

func TestExplainJoinsMultipleReasons(t *testing.T) {
	saved := explanationRules
	t.Cleanup(func() { explanationRules = saved })

	explanationRules = append(append([]explanationRule(nil), saved...), explanationRule{
		role:    "data analyst",
		reason:  "You know statistics.",
		matches: func(p models.Profile) bool { return hasAny(p.Skills, "Statistics") },
	})

	got := Explain("Data Analyst", models.Profile{Skills: []string{"SQL", "Statistics"}})

	assert.Equal(t, "Your programming skills in Python/SQL match this role. You know statistics.", got)
}
