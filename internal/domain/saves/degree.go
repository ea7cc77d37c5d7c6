// Package saves holds the saves record model and the boundary to the host's flags bag.
package saves

import "fmt"

// DegreeOfSuccess is the ordered outcome of a save. The order is load-bearing:
// Multiplier switches on it directly.
type DegreeOfSuccess int

const (
	CriticalFailure DegreeOfSuccess = iota
	Failure
	Success
	CriticalSuccess
)

var degreeNames = [...]string{"criticalFailure", "failure", "success", "criticalSuccess"}

// String returns the host's outcome name
func (d DegreeOfSuccess) String() string {
	if !d.Valid() {
		return fmt.Sprintf("degree(%d)", int(d))
	}
	return degreeNames[d]
}

// Valid reports whether d is one of the four outcomes
func (d DegreeOfSuccess) Valid() bool {
	return d >= CriticalFailure && d <= CriticalSuccess
}

// ParseDegree reads an outcome name
func ParseDegree(name string) (DegreeOfSuccess, error) {
	for i, n := range degreeNames {
		if n == name {
			return DegreeOfSuccess(i), nil
		}
	}
	return 0, fmt.Errorf("unknown degree of success %q", name)
}

// Multiplier maps a save outcome to the basic-save damage multiplier.
func Multiplier(d DegreeOfSuccess) float64 {
	switch d {
	case CriticalFailure:
		return 2
	case Failure:
		return 1
	case Success:
		return 0.5
	default:
		return 0
	}
}
