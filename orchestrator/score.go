package orchestrator

import "github.com/veldtlabs/mentormesh/core"

// Routing weights: domain match dominates, language support next, base
// confidence breaks the rest.
const (
	weightDomain     = 0.5
	weightLanguage   = 0.3
	weightConfidence = 0.2
)

// capabilityScore rates how well a capability serves a domain/language
// pair.
func capabilityScore(cap core.AgentCapability, domain, language string) float64 {
	var score float64
	if cap.Domain == domain || cap.HasSkill(domain) {
		score += weightDomain
	}
	if cap.SupportsLanguage(language) {
		score += weightLanguage
	}
	return score + weightConfidence*cap.Confidence
}

// selectAgent returns the registered agent with the highest capability
// score for the domain and language. Ties resolve to the earliest
// registration. Returns nil when no agents are registered.
func (o *Orchestrator) selectAgent(domain, language string) core.Agent {
	o.mu.RLock()
	defer o.mu.RUnlock()

	var best core.Agent
	bestScore := -1.0
	for _, a := range o.agents {
		if s := capabilityScore(a.Capability(), domain, language); s > bestScore {
			best, bestScore = a, s
		}
	}
	return best
}
