// Package agent binds a reasoning provider, a ReAct loop, dialogue state
// and a declared capability into one addressable unit implementing
// core.Agent.
package agent

import "strings"

// Classification is the lightweight intent/domain/language analysis of one
// input, produced without any external NLP dependency.
type Classification struct {
	Intent   string
	Domain   string
	Language string
}

// Intents recognized by the default classifier.
const (
	IntentGreeting  = "greeting"
	IntentGratitude = "gratitude"
	IntentQuestion  = "question"
	IntentRequest   = "request"
)

// Domains recognized by the default classifier.
const (
	DomainMathematics  = "mathematics"
	DomainEducation    = "education"
	DomainLogic        = "logic"
	DomainConversation = "conversation"
)

// Classifier analyzes one input turn. Pluggable so keyword rules can be
// swapped for a model-backed implementation.
type Classifier func(input string) Classification

var (
	greetingMarkers  = []string{"hello", "hi ", "hey", "salut", "bonjour", "hola"}
	gratitudeWords   = []string{"thank", "thanks", "merci", "gracias"}
	mathMarkers      = []string{"solve", "équation", "equation", "calculate", "calcule", "résous", "math", "+", "=", "^"}
	educationMarkers = []string{"explain", "explique", "teach", "why", "pourquoi", "how does", "comment", "understand"}
	logicMarkers     = []string{"prove", "logic", "implies", "contradiction", "déduis"}
	frenchMarkers    = []string{"résous", "explique", "bonjour", "salut", "merci", "pourquoi", "équation", "calcule"}
	spanishMarkers   = []string{"hola", "gracias", "resuelve", "explica", "por qué"}
)

// DefaultClassifier applies keyword and entity rules over the input.
func DefaultClassifier(input string) Classification {
	t := strings.ToLower(strings.TrimSpace(input))

	c := Classification{
		Intent:   IntentRequest,
		Domain:   DomainConversation,
		Language: detectLanguage(t),
	}

	switch {
	case matchAny(t, gratitudeWords):
		c.Intent = IntentGratitude
	case matchAny(t, greetingMarkers) && len(t) < 30:
		c.Intent = IntentGreeting
	case strings.Contains(t, "?"):
		c.Intent = IntentQuestion
	}

	switch {
	case matchAny(t, mathMarkers):
		c.Domain = DomainMathematics
	case matchAny(t, educationMarkers):
		c.Domain = DomainEducation
	case matchAny(t, logicMarkers):
		c.Domain = DomainLogic
	}

	return c
}

func detectLanguage(t string) string {
	if matchAny(t, frenchMarkers) || strings.ContainsAny(t, "àâçéèêëîïôùûü") {
		return "fr"
	}
	if matchAny(t, spanishMarkers) || strings.ContainsAny(t, "¿¡ñ") {
		return "es"
	}
	return "en"
}

func matchAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
