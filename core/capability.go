package core

// AgentCapability is a static declaration of what an agent can do, used by
// the orchestrator for routing. Registered once at start-up and immutable
// thereafter.
type AgentCapability struct {
	Domain     string   `json:"domain"`
	Skills     []string `json:"skills"`
	Confidence float64  `json:"confidence"`
	Languages  []string `json:"languages"`
}

// SupportsLanguage reports whether the capability declares the given
// language tag.
func (c AgentCapability) SupportsLanguage(lang string) bool {
	for _, l := range c.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// HasSkill reports whether the capability declares the given skill.
func (c AgentCapability) HasSkill(skill string) bool {
	for _, s := range c.Skills {
		if s == skill {
			return true
		}
	}
	return false
}
