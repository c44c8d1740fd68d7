package models

import (
	"database/sql/driver"
	"encoding/json"
)

// IDList is a JSON-serialized list of row ids stored in a text column.
// Decoding is deliberately lenient: NULL, empty or corrupt column values
// come back as an empty list so partial data never breaks a read.
type IDList []uint

func (l IDList) Value() (driver.Value, error) {
	if l == nil {
		l = IDList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *IDList) Scan(v any) error {
	*l = IDList{}
	var raw []byte
	switch t := v.(type) {
	case []byte:
		raw = t
	case string:
		raw = []byte(t)
	default:
		return nil
	}
	if len(raw) == 0 {
		return nil
	}
	var out []uint
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	*l = out
	return nil
}

func (l IDList) Contains(id uint) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Without returns a copy with every occurrence of id removed.
func (l IDList) Without(id uint) IDList {
	out := make(IDList, 0, len(l))
	for _, v := range l {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Event is one apparatus entry of a competition participation.
type Event struct {
	Apparatus string `json:"apparatus"`
	Routine   string `json:"routine,omitempty"`
	Level     string `json:"level,omitempty"`
	Award     string `json:"award,omitempty"`
}

// EventList is stored the same way as IDList: JSON text, lenient decode.
type EventList []Event

func (l EventList) Value() (driver.Value, error) {
	if l == nil {
		l = EventList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *EventList) Scan(v any) error {
	*l = EventList{}
	var raw []byte
	switch t := v.(type) {
	case []byte:
		raw = t
	case string:
		raw = []byte(t)
	default:
		return nil
	}
	if len(raw) == 0 {
		return nil
	}
	var out []Event
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	*l = out
	return nil
}
