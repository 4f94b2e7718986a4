package entity

import (
	"fmt"
	"net/http"

	"github.com/MohamedSadiq102/context.Orion-LD/errors"
	"github.com/MohamedSadiq102/context.Orion-LD/vocabulary"
)

// Metadata is a named value attached to an attribute.
type Metadata struct {
	Name  string
	Type  string
	Value Value
}

// Attribute is one attribute of an entity. Metadata keeps backend order.
type Attribute struct {
	Name     string
	Type     string
	Value    Value
	Metadata []Metadata
}

// ErrorCode is the status the backend reported for an entity or a batch.
type ErrorCode struct {
	Code         int
	ReasonPhrase string
	Details      string
}

// StatusCode returns Code, treating an unset code as 200.
func (e ErrorCode) StatusCode() int {
	if e.Code == 0 {
		return http.StatusOK
	}
	return e.Code
}

// OK reports whether the status is 200 (or unset).
func (e ErrorCode) OK() bool {
	return e.StatusCode() == http.StatusOK
}

// Entity is the backend representation of one NGSI-LD entity.
// Attributes keep the order they arrived in.
type Entity struct {
	ID         string
	Type       string
	Attributes []Attribute
	Error      ErrorCode
}

// Attribute returns the first attribute named name.
func (e *Entity) Attribute(name string) (*Attribute, bool) {
	for i := range e.Attributes {
		if e.Attributes[i].Name == name {
			return &e.Attributes[i], true
		}
	}
	return nil, false
}

// ContextAttribute returns the entity's "@context" attribute, if present.
func (e *Entity) ContextAttribute() (*Attribute, bool) {
	return e.Attribute(vocabulary.ContextMember)
}

// Validate checks the invariants a backend entity must satisfy.
func (e *Entity) Validate() error {
	if e.ID == "" {
		return errors.WrapInvalid(errors.ErrInvalidData, "Entity", "Validate", "entity id cannot be empty")
	}
	for i, a := range e.Attributes {
		if a.Name == "" {
			return errors.WrapInvalid(errors.ErrInvalidData, "Entity", "Validate",
				fmt.Sprintf("attribute %d of %s has no name", i, e.ID))
		}
	}
	return nil
}

// Batch is the result of one backend query: the entities found and the
// status of the query as a whole.
type Batch struct {
	Entities []Entity
	Error    ErrorCode
}
