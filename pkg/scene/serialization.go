package scene

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Serialization helpers for converting between frames and Redis hashes
//
// Scalar fields are stored as individual hash fields; cells and words are
// JSON-encoded into single fields.

// FrameToHash converts a Frame to a Redis hash.
func FrameToHash(f *Frame) (map[string]interface{}, error) {
	cellsJSON, err := json.Marshal(f.Cells)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cells: %w", err)
	}

	wordsJSON, err := json.Marshal(f.Words)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal words: %w", err)
	}

	orbitJSON, err := json.Marshal(f.Orbit)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal orbit: %w", err)
	}

	hash := map[string]interface{}{
		"id":            f.ID,
		"session_id":    f.SessionID,
		"seq":           f.Seq,
		"mode":          string(f.Mode),
		"name":          f.Name,
		"cells":         string(cellsJSON),
		"words":         string(wordsJSON),
		"allow_save":    strconv.FormatBool(f.AllowSave),
		"solved":        strconv.FormatBool(f.Solved),
		"selection":     f.Selection,
		"orbit":         string(orbitJSON),
		"created_at_ms": f.CreatedAtMs,
	}

	return hash, nil
}

// HashToFrame converts a Redis hash back to a Frame.
func HashToFrame(hash map[string]string) (*Frame, error) {
	seq, err := strconv.ParseInt(hash["seq"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid seq field: %w", err)
	}

	selection, err := strconv.Atoi(hash["selection"])
	if err != nil {
		return nil, fmt.Errorf("invalid selection field: %w", err)
	}

	allowSave, err := strconv.ParseBool(hash["allow_save"])
	if err != nil {
		return nil, fmt.Errorf("invalid allow_save field: %w", err)
	}

	solved, err := strconv.ParseBool(hash["solved"])
	if err != nil {
		return nil, fmt.Errorf("invalid solved field: %w", err)
	}

	cells := []CellView{}
	if raw := hash["cells"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &cells); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cells: %w", err)
		}
	}

	words := []WordView{}
	if raw := hash["words"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &words); err != nil {
			return nil, fmt.Errorf("failed to unmarshal words: %w", err)
		}
	}

	var orbit [3]int
	if raw := hash["orbit"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &orbit); err != nil {
			return nil, fmt.Errorf("failed to unmarshal orbit: %w", err)
		}
	}

	createdAtMs, _ := strconv.ParseInt(hash["created_at_ms"], 10, 64)

	return &Frame{
		ID:          hash["id"],
		SessionID:   hash["session_id"],
		Seq:         seq,
		Mode:        Mode(hash["mode"]),
		Name:        hash["name"],
		Cells:       cells,
		Words:       words,
		AllowSave:   allowSave,
		Solved:      solved,
		Selection:   selection,
		Orbit:       orbit,
		CreatedAtMs: createdAtMs,
	}, nil
}
