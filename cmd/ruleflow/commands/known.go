package commands

import (
	"os"

	"gopkg.in/yaml.v3"
)

// knownSets is the optional YAML document --known-metrics-file loads:
//
//	metrics: [cpu, mem, disk]
//	variables: [k, threshold]
//
// Either list may be omitted; an omitted list disables that membership
// check entirely (nil set), matching lang.Validator's contract.
type knownSets struct {
	Metrics   []string `yaml:"metrics"`
	Variables []string `yaml:"variables"`
}

func loadKnownSets(path string) (knownMetrics, knownVariables map[string]struct{}, err error) {
	if path == "" {
		return nil, nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	var sets knownSets
	if err := yaml.Unmarshal(data, &sets); err != nil {
		return nil, nil, err
	}
	if sets.Metrics != nil {
		knownMetrics = toSet(sets.Metrics)
	}
	if sets.Variables != nil {
		knownVariables = toSet(sets.Variables)
	}
	return knownMetrics, knownVariables, nil
}

func toSet(names []string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, n := range names {
		out[n] = struct{}{}
	}
	return out
}
