// Package types holds the data structures shared by the storage, service
// and HTTP layers. Keeping them here prevents import cycles: every layer
// can import types without depending on the others.
package types

// Persona is one row of the persona table.
//
// ID is assigned by the store on insert and never changes afterwards.
// The remaining fields are replaced wholesale by an update.
type Persona struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Age      int    `json:"age"`
}

// PersonaFields is the writable part of a Persona: everything but the id.
// Create and update both take a full PersonaFields; there is no partial
// update.
type PersonaFields struct {
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Age      int    `json:"age"`
}

// Fields returns the writable part of p.
func (p Persona) Fields() PersonaFields {
	return PersonaFields{Name: p.Name, Lastname: p.Lastname, Age: p.Age}
}
