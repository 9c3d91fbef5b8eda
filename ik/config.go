package ik

import (
	"os"

	json "github.com/goccy/go-json"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// ErrNoChainInformation is used when a config holds no joints to build from.
var ErrNoChainInformation = errors.New("no chain information")

// ChainConfig represents all supported fields in a chain JSON file.
type ChainConfig struct {
	Name   string        `json:"name"`
	Joints []JointConfig `json:"joints"`
	// MinLinkLength overrides the default degenerate-link floor; setting it
	// very small explicitly allows near-coincident initial joints.
	MinLinkLength float64 `json:"min_link_length,omitempty"`
}

// JointConfig is one joint of a chain config: an initial position and an
// optional constraint.
type JointConfig struct {
	Position   r3.Vector         `json:"position"`
	Constraint *ConstraintConfig `json:"constraint,omitempty"`
}

// ConstraintConfig selects and parameterizes one of the constraint variants.
// Supported types are "unconstrained", "hinge" (min_degrees, max_degrees),
// "ball" (cone_degrees), and "fixed" (anchor, defaulting to the joint's own
// initial position).
type ConstraintConfig struct {
	Type        string     `json:"type"`
	MinDegrees  float64    `json:"min_degrees,omitempty"`
	MaxDegrees  float64    `json:"max_degrees,omitempty"`
	ConeDegrees float64    `json:"cone_degrees,omitempty"`
	Anchor      *r3.Vector `json:"anchor,omitempty"`
}

// UnmarshalChainJSON parses the given JSON data into a Chain. chainName
// overrides the name from the JSON when non-empty.
func UnmarshalChainJSON(jsonData []byte, chainName string) (*Chain, error) {
	// empty data probably means the owning entity has no chain configured
	if len(jsonData) == 0 {
		return nil, ErrNoChainInformation
	}

	cfg := &ChainConfig{}
	if err := json.Unmarshal(jsonData, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal json file")
	}
	return cfg.ParseConfig(chainName)
}

// ParseJSONFile reads and parses a chain config from a file on disk.
func ParseJSONFile(filename, chainName string) (*Chain, error) {
	jsonData, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read json file")
	}
	return UnmarshalChainJSON(jsonData, chainName)
}

// ParseConfig converts the ChainConfig into a Chain named chainName,
// attaching any configured per-joint constraints.
func (cfg *ChainConfig) ParseConfig(chainName string) (*Chain, error) {
	if chainName == "" {
		chainName = cfg.Name
	}

	positions := make([]r3.Vector, 0, len(cfg.Joints))
	for _, joint := range cfg.Joints {
		positions = append(positions, joint.Position)
	}

	minLinkLength := cfg.MinLinkLength
	if minLinkLength == 0 {
		minLinkLength = defaultMinLinkLength
	}
	chain, err := newChain(chainName, positions, minLinkLength)
	if err != nil {
		return nil, err
	}

	for i, joint := range cfg.Joints {
		if joint.Constraint == nil {
			continue
		}
		constraint, err := joint.Constraint.toConstraint(positions[i])
		if err != nil {
			return nil, err
		}
		if err := chain.SetConstraint(i, constraint); err != nil {
			return nil, err
		}
	}
	return chain, nil
}

func (cc *ConstraintConfig) toConstraint(jointPosition r3.Vector) (Constraint, error) {
	switch cc.Type {
	case "", "unconstrained":
		return Unconstrained{}, nil
	case "hinge":
		hinge, err := NewHingeAngle(cc.MinDegrees, cc.MaxDegrees)
		if err != nil {
			return nil, err
		}
		return hinge, nil
	case "ball":
		ball, err := NewBallAndSocket(cc.ConeDegrees)
		if err != nil {
			return nil, err
		}
		return ball, nil
	case "fixed":
		anchor := jointPosition
		if cc.Anchor != nil {
			anchor = *cc.Anchor
		}
		return FixedPosition{Anchor: anchor}, nil
	default:
		return nil, NewUnsupportedConstraintError(cc.Type)
	}
}
