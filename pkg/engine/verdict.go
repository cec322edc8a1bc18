package engine

import "github.com/mehrshadshams/reactive/pkg/sample"

// Verdict is a boolean output of an expression node, tagged with the
// period of the input that produced it and the node that produced it.
// NodeName is stable within a single build but is not a cross-build
// identifier (spec's observable Verdict shape).
type Verdict struct {
	NodeName string
	Value    bool
	Period   sample.Period
}

// Aggregate is the intermediate value a windower+fold produces before the
// leaf compares it against a threshold.
type Aggregate struct {
	NodeName string
	Kind     string
	Period   sample.Period
	Value    float64
}
