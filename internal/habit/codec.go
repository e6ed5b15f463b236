package habit

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ramanasai/tally/internal/calendar"
)

// On-disk shapes. Field names are kept stable so existing snapshot and
// archive files keep loading.
type bitJSON struct {
	Type  Kind                   `json:"type"`
	Name  string                 `json:"name"`
	Stats map[calendar.Date]bool `json:"stats"`
	Goal  bool                   `json:"goal"`
}

type countJSON struct {
	Type  Kind                     `json:"type"`
	Name  string                   `json:"name"`
	Stats map[calendar.Date]uint32 `json:"stats"`
	Goal  uint32                   `json:"goal"`
	Auto  bool                     `json:"auto"`
}

type floatJSON struct {
	Type      Kind                      `json:"type"`
	Name      string                    `json:"name"`
	Stats     map[calendar.Date]float64 `json:"stats"`
	Goal      float64                   `json:"goal"`
	Precision uint8                     `json:"precision"`
}

func (b *Bit) MarshalJSON() ([]byte, error) {
	return json.Marshal(bitJSON{Type: KindBit, Name: b.name, Stats: b.stats, Goal: true})
}

func (c *Count) MarshalJSON() ([]byte, error) {
	return json.Marshal(countJSON{Type: KindCount, Name: c.name, Stats: c.stats, Goal: c.goal, Auto: c.auto})
}

func (f *Float) MarshalJSON() ([]byte, error) {
	stats := make(map[calendar.Date]float64, len(f.stats))
	for d, u := range f.stats {
		stats[d] = f.fromUnits(u)
	}
	return json.Marshal(floatJSON{Type: KindFloat, Name: f.name, Stats: stats, Goal: f.Goal(), Precision: f.precision})
}

var decoders = map[Kind]func([]byte) (Habit, error){
	KindBit:   decodeBit,
	KindCount: decodeCount,
	KindFloat: decodeFloat,
}

func decodeBit(data []byte) (Habit, error) {
	var raw bitJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	b := NewBit(raw.Name)
	for d, v := range raw.Stats {
		b.Set(d, v)
	}
	return b, nil
}

func decodeCount(data []byte) (Habit, error) {
	var raw countJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	c := NewCount(raw.Name, raw.Goal, raw.Auto)
	for d, v := range raw.Stats {
		c.Set(d, v)
	}
	return c, nil
}

func decodeFloat(data []byte) (Habit, error) {
	var raw floatJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw.Precision > MaxPrecision {
		return nil, fmt.Errorf("precision %d exceeds %d", raw.Precision, MaxPrecision)
	}
	if _, err := FloatUnits(raw.Goal, raw.Precision); err != nil {
		return nil, fmt.Errorf("goal: %w", err)
	}
	f := NewFloat(raw.Name, raw.Goal, raw.Precision)
	for d, v := range raw.Stats {
		u, err := FloatUnits(v, raw.Precision)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d, err)
		}
		f.setUnits(d, u)
	}
	return f, nil
}

// Decode reads one habit object, dispatching on its "type" field.
func Decode(data []byte) (Habit, error) {
	var tag struct {
		Type Kind   `json:"type"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, err
	}
	decode, ok := decoders[tag.Type]
	if !ok {
		return nil, fmt.Errorf("habit: unknown type %q", tag.Type)
	}
	if tag.Name == "" {
		return nil, errors.New("habit: missing name")
	}
	h, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("habit %q: %w", tag.Name, err)
	}
	return h, nil
}

// DecodeList reads a JSON array of habits. Empty input is an empty list.
func DecodeList(data []byte) ([]Habit, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}
	hs := make([]Habit, 0, len(raws))
	seen := make(map[string]bool, len(raws))
	for _, raw := range raws {
		h, err := Decode(raw)
		if err != nil {
			return nil, err
		}
		if seen[h.Name()] {
			return nil, fmt.Errorf("habit: duplicate name %q", h.Name())
		}
		seen[h.Name()] = true
		hs = append(hs, h)
	}
	return hs, nil
}

// EncodeList writes habits as an indented JSON array with every object's keys
// sorted, so successive saves diff cleanly.
func EncodeList(hs []Habit) ([]byte, error) {
	if hs == nil {
		hs = []Habit{}
	}
	data, err := json.Marshal(hs)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, err
	}
	return json.MarshalIndent(generic, "", "  ")
}
