package artifact

import (
	"fmt"
	"os"
)

// LoadOutputs reads build outputs from disk, keyed by classifier.
// This is the only part of the package that performs I/O.
func LoadOutputs(paths map[string]string) (Outputs, error) {
	out := make(Outputs, len(paths))
	for classifier, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s output: %w", describe(classifier), err)
		}
		out[classifier] = data
	}
	return out, nil
}

func describe(classifier string) string {
	if classifier == Primary {
		return "primary"
	}
	return classifier
}
