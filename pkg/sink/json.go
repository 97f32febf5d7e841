package sink

import (
	"encoding/json"

	"github.com/matzehuels/microviz/pkg/model"
)

// RenderJSON encodes m as indented JSON with a trailing newline.
func RenderJSON(m model.RenderModel) ([]byte, error) {
	if m.Marks == nil {
		m.Marks = []model.Mark{}
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
