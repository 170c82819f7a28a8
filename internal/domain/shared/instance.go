// Package shared holds the handful of primitives the rest of the domain
// model depends on: the closed Instance enum and the fixed-offset
// Datetime type (spec §2 "Datetime & Instance primitives").
package shared

import "fmt"

// Instance is a locale code. The set is closed: {de, en, es, fr, hi, ta}.
type Instance string

const (
	InstanceDE Instance = "de"
	InstanceEN Instance = "en"
	InstanceES Instance = "es"
	InstanceFR Instance = "fr"
	InstanceHI Instance = "hi"
	InstanceTA Instance = "ta"
)

// ValidInstances lists every member of the closed enum, in a stable order
// used for error messages and tests.
var ValidInstances = []Instance{InstanceDE, InstanceEN, InstanceES, InstanceFR, InstanceHI, InstanceTA}

// Valid reports whether i is one of the six recognized locale codes.
func (i Instance) Valid() bool {
	for _, v := range ValidInstances {
		if v == i {
			return true
		}
	}

	return false
}

// ParseInstance validates and returns s as an Instance, or an error
// describing the closed set it must belong to.
func ParseInstance(s string) (Instance, error) {
	i := Instance(s)
	if !i.Valid() {
		return "", fmt.Errorf("instance %q is not one of %v", s, ValidInstances)
	}

	return i, nil
}
