package pipeline

import (
	"encoding/json"
	"math"

	"github.com/matzehuels/microviz/pkg/cache"
	"github.com/matzehuels/microviz/pkg/model"
)

// inputVersion salts input hashes. Bump it when the engine's output for an
// unchanged input changes.
const inputVersion = 2

type canonicalInput struct {
	Version  int          `json:"v"`
	Type     model.Type   `json:"type"`
	Spec     model.Spec   `json:"spec"`
	Data     any          `json:"data"`
	Size     model.Size   `json:"size"`
	State    *model.State `json:"state,omitempty"`
	Theme    *model.Theme `json:"theme,omitempty"`
	IDPrefix string       `json:"idPrefix,omitempty"`
}

// InputHash returns the content hash of an engine input. Non-finite series
// values hash as null, since normalization drops them all alike. Inputs that
// still do not encode (a NaN option set in code, say) return an error and
// are simply not cached.
func InputHash(in model.Input) (string, error) {
	c := canonicalInput{
		Version:  inputVersion,
		Spec:     in.Spec,
		Data:     in.Data,
		Size:     in.Size,
		State:    in.State,
		Theme:    in.Theme,
		IDPrefix: in.IDPrefix,
	}
	if !model.MissingSpec(in.Spec) {
		c.Type = in.Spec.Type()
	}
	if s, ok := in.Data.(model.Series); ok {
		vals := make([]*float64, len(s))
		for i, v := range s {
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				vals[i] = &v
			}
		}
		c.Data = vals
	}
	data, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}
