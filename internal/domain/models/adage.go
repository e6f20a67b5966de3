package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"FxDash/pkg/util"
)

// ErrMalformedEnvelope is returned when a payload is not a JSON object.
var ErrMalformedEnvelope = errors.New("malformed ADAGE envelope")

// Attributes is an untrusted JSON object. Accessors never panic and always
// return a value of the requested type.
type Attributes map[string]any

// String returns a[key] when it is a string, def otherwise.
func (a Attributes) String(key, def string) string {
	if s, ok := a[key].(string); ok {
		return s
	}
	return def
}

// Number coerces a[key] to a finite float64.
func (a Attributes) Number(key string, def float64) float64 {
	return util.CoerceNumber(a[key], def)
}

// Int coerces a[key] to an int.
func (a Attributes) Int(key string, def int) int {
	return util.CoerceInt(a[key], def)
}

// OptionalNumber returns nil when a[key] is absent or not coercible.
func (a Attributes) OptionalNumber(key string) *float64 {
	v, ok := a[key]
	if !ok || v == nil {
		return nil
	}
	n := util.CoerceNumber(v, math.NaN())
	if math.IsNaN(n) {
		return nil
	}
	return &n
}

// Bool accepts JSON booleans and the strings "true"/"false".
func (a Attributes) Bool(key string) bool {
	switch v := a[key].(type) {
	case bool:
		return v
	case string:
		return util.ParseBool(v)
	default:
		return false
	}
}

// List returns a[key] when it is an array; never nil.
func (a Attributes) List(key string) []any {
	if l, ok := a[key].([]any); ok {
		return l
	}
	return []any{}
}

// Object returns a[key] when it is an object; never nil.
func (a Attributes) Object(key string) Attributes {
	if m, ok := asObject(a[key]); ok {
		return m
	}
	return Attributes{}
}

func asObject(v any) (Attributes, bool) {
	switch m := v.(type) {
	case map[string]any:
		return Attributes(m), true
	case Attributes:
		return m, m != nil
	default:
		return nil, false
	}
}

// Objects returns the object elements of the array at key, skipping anything else.
func (a Attributes) Objects(key string) []Attributes {
	list := a.List(key)
	out := make([]Attributes, 0, len(list))
	for _, item := range list {
		if m, ok := asObject(item); ok {
			out = append(out, m)
		}
	}
	return out
}

// Event is one ADAGE event.
type Event struct {
	TimeObject Attributes `json:"time_object"`
	EventType  string     `json:"event_type"`
	EventID    string     `json:"event_id"`
	Attributes Attributes `json:"attributes"`
}

// Envelope is the analytics backend's response wrapper.
type Envelope struct {
	DataSource  string     `json:"data_source"`
	DatasetType string     `json:"dataset_type"`
	DatasetID   string     `json:"dataset_id"`
	TimeObject  Attributes `json:"time_object"`
	Events      []Event    `json:"events"`
}

// First returns events[0].attributes when present and non-empty.
func (e *Envelope) First() (Attributes, bool) {
	if e == nil || len(e.Events) == 0 || len(e.Events[0].Attributes) == 0 {
		return nil, false
	}
	return e.Events[0].Attributes, true
}

// ParseEnvelope decodes an untrusted payload. Wrongly typed fields are replaced
// by empty values and non-object events are dropped; only a non-object payload fails.
func ParseEnvelope(b []byte) (*Envelope, error) {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top level is not an object", ErrMalformedEnvelope)
	}
	return EnvelopeFromObject(Attributes(obj)), nil
}

// EnvelopeFromObject builds an Envelope from an already decoded object.
func EnvelopeFromObject(obj Attributes) *Envelope {
	env := &Envelope{
		DataSource:  obj.String("data_source", ""),
		DatasetType: obj.String("dataset_type", ""),
		DatasetID:   obj.String("dataset_id", ""),
		TimeObject:  obj.Object("time_object"),
		Events:      []Event{},
	}
	events := obj.Objects("events")
	if !obj.HasKey("events") {
		// the historical endpoint has shipped the singular key
		events = obj.Objects("event")
	}
	for _, ev := range events {
		attrs := ev.Object("attributes")
		if len(attrs) == 0 {
			// some backend revisions emit the singular key
			attrs = ev.Object("attribute")
		}
		env.Events = append(env.Events, Event{
			TimeObject: ev.Object("time_object"),
			EventType:  ev.String("event_type", ""),
			EventID:    ev.String("event_id", ""),
			Attributes: attrs,
		})
	}
	return env
}

// HasKey reports whether any of keys is present in a.
func (a Attributes) HasKey(keys ...string) bool {
	for _, k := range keys {
		if _, ok := a[k]; ok {
			return true
		}
	}
	return false
}

// Code returns an upper-cased currency code from the first present key, or def.
func (a Attributes) Code(def string, keys ...string) string {
	for _, k := range keys {
		if s := strings.TrimSpace(a.String(k, "")); s != "" {
			return strings.ToUpper(s)
		}
	}
	return def
}
