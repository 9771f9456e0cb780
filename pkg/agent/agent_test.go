package agent

import (
	"strings"
	"testing"

	"github.com/simforge/fea-sim/pkg/contract"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare json",
			input: `{"TEST_TYPE": "TaylorImpact"}`,
			want:  `{"TEST_TYPE": "TaylorImpact"}`,
		},
		{
			name:  "json fence",
			input: "```json\n{\"TEST_TYPE\": \"TaylorImpact\"}\n```",
			want:  `{"TEST_TYPE": "TaylorImpact"}`,
		},
		{
			name:  "plain fence",
			input: "```\n{\"TEST_TYPE\": \"TaylorImpact\"}\n```",
			want:  `{"TEST_TYPE": "TaylorImpact"}`,
		},
		{
			name:  "surrounding whitespace",
			input: "\n  {\"TEST_TYPE\": \"TaylorImpact\"}  \n",
			want:  `{"TEST_TYPE": "TaylorImpact"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripFences(tt.input); got != tt.want {
				t.Errorf("StripFences(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSystemPromptTracksContract(t *testing.T) {
	prompt := systemPrompt()

	for _, key := range []string{"TEST_TYPE", "GEOMETRY", "MATERIAL", "LOADING", "DISCRETIZATION"} {
		if !strings.Contains(prompt, key) {
			t.Errorf("System prompt missing wire key %s", key)
		}
	}

	// Every supported test type and material must be offered to the model.
	for _, testType := range contract.SupportedTestTypes() {
		if !strings.Contains(prompt, testType) {
			t.Errorf("System prompt missing test type %s", testType)
		}
	}
	for _, material := range contract.KnownMaterials() {
		if !strings.Contains(prompt, material) {
			t.Errorf("System prompt missing material %s", material)
		}
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New(t.Context(), "", ""); err == nil {
		t.Error("Expected error when API key is empty")
	}
}
