package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/OmOmofonmwan/puli/pkg/puli/graph"
	"github.com/OmOmofonmwan/puli/pkg/puli/internalerr"
	"github.com/OmOmofonmwan/puli/pkg/puli/sets"
)

// GraphFile is the YAML shape of an inference-graph fixture:
//
//	inferences:
//	  - name: I1
//	    conclusion: c
//	    premises: [a, b]
//	    axioms: [x]
type GraphFile struct {
	Inferences []InferenceEntry `yaml:"inferences"`
}

// InferenceEntry is one inference of a GraphFile.
type InferenceEntry struct {
	Name       string   `yaml:"name"`
	Conclusion string   `yaml:"conclusion"`
	Premises   []string `yaml:"premises"`
	Axioms     []string `yaml:"axioms"`
}

// LoadGraph reads an inference graph and its justifier from a YAML file.
// Entries without a name get a generated one; names must be unique because
// the justifier is keyed by name.
func LoadGraph(path string) (*graph.Builder[string], graph.Justifier[string, string], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	var file GraphFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, nil, err
	}
	return BuildGraph(file)
}

// BuildGraph converts a parsed GraphFile into a builder and a by-name
// justifier.
func BuildGraph(file GraphFile) (*graph.Builder[string], graph.Justifier[string, string], error) {
	b := graph.NewBuilder[string]()
	justifier := make(graph.ByName[string, string], len(file.Inferences))
	for i, entry := range file.Inferences {
		if entry.Conclusion == "" {
			return nil, nil, fmt.Errorf("%w: inference %d has no conclusion", internalerr.ErrInvalidInput, i)
		}
		name := entry.Name
		if name == "" {
			name = fmt.Sprintf("inf-%d", i)
		}
		if _, dup := justifier[name]; dup {
			return nil, nil, fmt.Errorf("%w: duplicate inference name %q", internalerr.ErrInvalidInput, name)
		}
		b.Add(entry.Conclusion, entry.Premises, name)
		justifier[name] = sets.FromSlice(entry.Axioms)
	}
	return b, justifier, nil
}
