package catalog

// Agent describes one capability a project can activate. Agents are immutable
// once loaded; content comes entirely from the shipped catalog version, never
// from the project.
type Agent struct {
	id          string
	category    Category
	description string
	examples    []string
}

// NewAgent creates an agent descriptor. Used by the loader and by test
// fixtures; production code reads agents from a loaded Catalog.
func NewAgent(id string, category Category, description string, examples ...string) *Agent {
	return &Agent{
		id:          id,
		category:    category,
		description: description,
		examples:    examples,
	}
}

// ID returns the agent's globally unique slug (e.g. "react-specialist").
func (a *Agent) ID() string {
	return a.id
}

// Category returns the category the agent belongs to.
func (a *Agent) Category() Category {
	return a.category
}

// Description returns the one-line description shown in listings.
func (a *Agent) Description() string {
	return a.description
}

// Examples returns usage examples in catalog order.
func (a *Agent) Examples() []string {
	return a.examples
}
