package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultClassifier_Intent(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello there!", IntentGreeting},
		{"Salut!", IntentGreeting},
		{"Thanks a lot for the help", IntentGratitude},
		{"What is a derivative?", IntentQuestion},
		{"Walk me through long division", IntentRequest},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DefaultClassifier(tt.input).Intent, "input %q", tt.input)
	}
}

func TestDefaultClassifier_Domain(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Solve 2x + 3 = 7", DomainMathematics},
		{"Résous cette équation", DomainMathematics},
		{"Explain why the sky is blue", DomainEducation},
		{"Prove that the implication holds", DomainLogic},
		{"Nice weather today", DomainConversation},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DefaultClassifier(tt.input).Domain, "input %q", tt.input)
	}
}

func TestDefaultClassifier_Language(t *testing.T) {
	assert.Equal(t, "fr", DefaultClassifier("Résous 2x + 3 = 7 et explique").Language)
	assert.Equal(t, "fr", DefaultClassifier("bonjour").Language)
	assert.Equal(t, "es", DefaultClassifier("Hola, resuelve esto").Language)
	assert.Equal(t, "en", DefaultClassifier("Solve this equation").Language)
}
