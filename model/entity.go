package model

// Identifiable is implemented by every entity carrying an opaque identifier.
// Identifiers are assigned by the backends, never minted here, and never
// change after construction.
type Identifiable interface {
	Identifier() string
}

// Person represents an author or other identified person.
// Two persons are the same entity iff their identifiers are equal;
// name collisions do not merge.
type Person struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Identifier returns the opaque identifier of the person.
func (p *Person) Identifier() string {
	return p.ID
}
