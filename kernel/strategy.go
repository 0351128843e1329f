package kernel

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStrategy is returned for strategy names that do not parse.
var ErrUnknownStrategy = errors.New("kernel: unknown strategy")

// Strategy selects how sprite transforms are computed each frame.
type Strategy uint8

const (
	// StrategyMatrix derives every transform from the global clock and a
	// per-sprite phase through the animation table. Stateless.
	StrategyMatrix Strategy = iota
	// StrategyRotate steps a per-sprite oscillator and faces each sprite to
	// the camera position.
	StrategyRotate
	// StrategyParent steps an oscillator on a parent entity that faces the
	// camera plane and resolves a child quad through the hierarchy.
	StrategyParent
)

var strategyNames = [...]string{
	StrategyMatrix: "matrix",
	StrategyRotate: "rotate",
	StrategyParent: "parent",
}

func (s Strategy) String() string {
	if int(s) < len(strategyNames) {
		return strategyNames[s]
	}
	return fmt.Sprintf("Strategy(%d)", s)
}

// ParseStrategy maps a case-insensitive name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range strategyNames {
		if s == n {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	if int(s) >= len(strategyNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, s)
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so strategies can be
// named in configuration files.
func (s *Strategy) UnmarshalText(text []byte) error {
	v, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
