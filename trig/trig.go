// Package trig provides sine and cosine for whole-degree angles without calling
// into the math package on the hot path.
package trig

import (
	"fmt"
	"math"
)

// Approximator computes sine and cosine of an angle given in whole degrees.
// Any integer is accepted; it is normalised into [0, 360) first, so
// Cos(d) == Sin(d+90) holds exactly for every implementation.
type Approximator interface {
	Sin(deg int) float32
	Cos(deg int) float32
}

// Kind selects an Approximator implementation.
type Kind string

const (
	KindTable      Kind = "table"
	KindPolynomial Kind = "polynomial"
	KindReference  Kind = "reference"
)

// ParseKind validates an approximator name. The empty name selects KindTable.
func ParseKind(name string) (Kind, error) {
	switch k := Kind(name); k {
	case "":
		return KindTable, nil
	case KindTable, KindPolynomial, KindReference:
		return k, nil
	}
	return "", fmt.Errorf("trig: unknown approximator %q", name)
}

// New returns the Approximator for kind. Tables are built eagerly.
func New(kind Kind) (Approximator, error) {
	k, err := ParseKind(string(kind))
	if err != nil {
		return nil, err
	}
	switch k {
	case KindPolynomial:
		return Polynomial{}, nil
	case KindReference:
		return Reference{}, nil
	}
	return NewTable(), nil
}

// Normalize maps any whole-degree angle into [0, 360).
func Normalize(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Reference delegates to the math package.
type Reference struct{}

func (Reference) Sin(deg int) float32 {
	return float32(math.Sin(float64(Normalize(deg)) * math.Pi / 180))
}

func (r Reference) Cos(deg int) float32 {
	return r.Sin(deg + 90)
}
