package handlers

import (
	"encoding/json"
	"io"
)

// decodeFields decodes a JSON object into v using only the keys listed in
// fields, matched exactly. encoding/json folds case when matching struct
// tags, so {"VOTETYPE": ...} would otherwise be read as voteType.
func decodeFields(body io.Reader, v interface{}, fields ...string) error {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return err
	}

	exact := make(map[string]json.RawMessage, len(fields))
	for _, field := range fields {
		if value, ok := raw[field]; ok {
			exact[field] = value
		}
	}

	data, err := json.Marshal(exact)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
