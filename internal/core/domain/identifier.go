// Package domain contains the core value types of the scan result cache.
package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// identifierParts is the number of colon-separated components in coordinates.
const identifierParts = 4

// Identifier uniquely names a package across ecosystems.
// It is comparable and therefore usable as a map key.
type Identifier struct {
	// Type is the ecosystem or package manager type (e.g., "Maven", "NPM").
	Type string `json:"type"`

	// Namespace is the group or scope of the package. May be empty.
	Namespace string `json:"namespace,omitzero"`

	// Name is the package name.
	Name string `json:"name"`

	// Version is the package version. May be empty.
	Version string `json:"version,omitzero"`
}

// ParseIdentifier parses coordinates of the form "Type:Namespace:Name:Version".
func ParseIdentifier(coordinates string) (Identifier, error) {
	parts := strings.Split(coordinates, ":")
	if len(parts) != identifierParts {
		return Identifier{}, zerr.With(ErrInvalidIdentifier, "coordinates", coordinates)
	}

	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	id := Identifier{
		Type:      parts[0],
		Namespace: parts[1],
		Name:      parts[2],
		Version:   parts[3],
	}
	if id.Type == "" || id.Name == "" {
		return Identifier{}, zerr.With(ErrInvalidIdentifier, "coordinates", coordinates)
	}

	return id, nil
}

// String returns the coordinates representation "Type:Namespace:Name:Version".
func (i Identifier) String() string {
	return strings.Join([]string{i.Type, i.Namespace, i.Name, i.Version}, ":")
}

// IsEmpty reports whether all components are empty.
func (i Identifier) IsEmpty() bool {
	return i == Identifier{}
}
