package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/starrystar99/KWU-EE-Chatbot-RAG/model"
)

// parseFreeSlots extracts the "free_slots" object while keeping its key
// order. encoding/json would decode the object into a map and scramble the
// day order the backend emits, so this walks the token stream instead.
func parseFreeSlots(raw []byte) ([]model.FreeSlotDay, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected JSON object, got %v", tok)
	}

	var days []model.FreeSlotDay
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)
		if key != "free_slots" {
			// skip the value of any other top-level field
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, err
			}
			continue
		}

		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			// "free_slots": null reads as no days detected
			continue
		}
		if d, ok := tok.(json.Delim); !ok || d != '{' {
			return nil, fmt.Errorf("free_slots is not an object")
		}
		for dec.More() {
			dayTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			day, _ := dayTok.(string)
			var times []string
			if err := dec.Decode(&times); err != nil {
				return nil, err
			}
			days = append(days, model.FreeSlotDay{Day: day, Times: times})
		}
		if _, err := dec.Token(); err != nil { // closing '}'
			return nil, err
		}
	}
	return days, nil
}
