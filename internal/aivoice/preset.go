package aivoice

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Style is one emotional-intensity dial of a voice preset.
type Style struct {
	Name  string  `json:"Name"`  // e.g. "J", "A", "S"
	Value float64 `json:"Value"` // 0.0-1.0

	Extra map[string]json.RawMessage `json:"-"`
}

type styleAlias Style

func (s Style) MarshalJSON() ([]byte, error) {
	known, err := encodeJSON(styleAlias(s))
	if err != nil {
		return nil, err
	}
	return appendMembers(known, s.Extra, isStyleField)
}

func (s *Style) UnmarshalJSON(data []byte) error {
	var alias styleAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	extra, err := unknownMembers(data, isStyleField)
	if err != nil {
		return err
	}
	alias.Extra = extra
	*s = Style(alias)
	return nil
}

// MergedVoice describes the voices blended into a preset.
type MergedVoice struct {
	BasePitchVoiceName string           `json:"BasePitchVoiceName"`
	MergedVoices       []map[string]any `json:"MergedVoices"`

	Extra map[string]json.RawMessage `json:"-"`
}

type mergedVoiceAlias MergedVoice

func (m MergedVoice) MarshalJSON() ([]byte, error) {
	known, err := encodeJSON(mergedVoiceAlias(m))
	if err != nil {
		return nil, err
	}
	return appendMembers(known, m.Extra, isMergedVoiceField)
}

func (m *MergedVoice) UnmarshalJSON(data []byte) error {
	var alias mergedVoiceAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	extra, err := unknownMembers(data, isMergedVoiceField)
	if err != nil {
		return err
	}
	alias.Extra = extra
	*m = MergedVoice(alias)
	return nil
}

// VoicePreset is the JSON payload accepted by AddVoicePreset/SetVoicePreset
// and returned by GetVoicePreset.
//
// Only PresetName and VoiceName are required. Nil fields are left out of the
// payload so the host applies its own defaults; ranges are enforced by the
// host, not here. Members this type does not know are kept in Extra and
// written back unchanged, as are members that were explicitly null and an
// empty Styles array.
type VoicePreset struct {
	PresetName           string       `json:"PresetName"`
	VoiceName            string       `json:"VoiceName"`
	MergedVoiceContainer *MergedVoice `json:"MergedVoiceContainer,omitempty"`
	Volume               *float64     `json:"Volume,omitempty"`      // 0.0-2.0
	Speed                *float64     `json:"Speed,omitempty"`       // 0.5-4.0
	Pitch                *float64     `json:"Pitch,omitempty"`       // 0.5-2.0
	PitchRange           *float64     `json:"PitchRange,omitempty"`  // 0.0-2.0
	MiddlePause          *int         `json:"MiddlePause,omitempty"` // ms
	LongPause            *int         `json:"LongPause,omitempty"`   // ms
	Styles               []Style      `json:"Styles,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`

	// nulls lists the known members the host sent as null.
	nulls []string
}

// presetFields is the set of members VoicePreset maps to struct fields.
var presetFields = []string{
	"PresetName", "VoiceName", "MergedVoiceContainer",
	"Volume", "Speed", "Pitch", "PitchRange",
	"MiddlePause", "LongPause", "Styles",
}

// Float returns a pointer to v, for the optional numeric preset fields.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

type presetAlias VoicePreset

// MarshalJSON writes known fields followed by Extra, without escaping
// non-ASCII or HTML characters.
func (p VoicePreset) MarshalJSON() ([]byte, error) {
	known, err := encodeJSON(presetAlias(p))
	if err != nil {
		return nil, err
	}
	return appendMembers(known, p.omitted(), func(string) bool { return false })
}

// omitted returns the members omitempty drops but the payload must carry:
// Extra, nulls whose field is still unset, and an empty non-nil Styles.
func (p VoicePreset) omitted() map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(p.Extra)+len(p.nulls)+1)
	for k, v := range p.Extra {
		if !isPresetField(k) {
			out[k] = v
		}
	}
	for _, name := range p.nulls {
		if p.unset(name) {
			out[name] = json.RawMessage("null")
		}
	}
	if p.Styles != nil && len(p.Styles) == 0 {
		out["Styles"] = json.RawMessage("[]")
	}
	return out
}

func (p VoicePreset) unset(name string) bool {
	switch name {
	case "MergedVoiceContainer":
		return p.MergedVoiceContainer == nil
	case "Volume":
		return p.Volume == nil
	case "Speed":
		return p.Speed == nil
	case "Pitch":
		return p.Pitch == nil
	case "PitchRange":
		return p.PitchRange == nil
	case "MiddlePause":
		return p.MiddlePause == nil
	case "LongPause":
		return p.LongPause == nil
	case "Styles":
		return p.Styles == nil
	}
	return false
}

// UnmarshalJSON fills known fields and keeps the rest in Extra.
func (p *VoicePreset) UnmarshalJSON(data []byte) error {
	var alias presetAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}
	for k, v := range members {
		if !isPresetField(k) {
			if alias.Extra == nil {
				alias.Extra = make(map[string]json.RawMessage)
			}
			alias.Extra[k] = v
			continue
		}
		if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			alias.nulls = append(alias.nulls, k)
		}
	}
	sort.Strings(alias.nulls)
	*p = VoicePreset(alias)
	return nil
}

// ParseVoicePreset decodes a preset JSON string as returned by the host.
func ParseVoicePreset(s string) (VoicePreset, error) {
	var p VoicePreset
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		return VoicePreset{}, fmt.Errorf("decode voice preset: %w", err)
	}
	return p, nil
}

// JSON encodes p in the form the host accepts.
func (p VoicePreset) JSON() (string, error) {
	data, err := encodeJSON(p)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ValidatePresetJSON checks that data carries every member the host writes
// back for a preset and that every style has a Name and a Value.
func ValidatePresetJSON(data []byte) error {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	var missing []string
	for _, field := range presetFields {
		if _, ok := members[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}

	var styles []map[string]json.RawMessage
	if err := json.Unmarshal(members["Styles"], &styles); err != nil {
		return errors.New("Styles must be an array of objects")
	}
	for i, style := range styles {
		_, hasName := style["Name"]
		_, hasValue := style["Value"]
		if !hasName || !hasValue {
			return fmt.Errorf("Styles[%d] must have Name and Value", i)
		}
	}
	return nil
}

func isPresetField(name string) bool { return contains(presetFields, name) }

func isStyleField(name string) bool { return name == "Name" || name == "Value" }

func isMergedVoiceField(name string) bool {
	return name == "BasePitchVoiceName" || name == "MergedVoices"
}

func contains(list []string, name string) bool {
	for _, f := range list {
		if f == name {
			return true
		}
	}
	return false
}

// unknownMembers returns the members of the JSON object data that isKnown
// rejects, or nil when there are none.
func unknownMembers(data []byte, isKnown func(string) bool) (map[string]json.RawMessage, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, err
	}
	var extra map[string]json.RawMessage
	for k, v := range members {
		if isKnown(k) {
			continue
		}
		if extra == nil {
			extra = make(map[string]json.RawMessage)
		}
		extra[k] = v
	}
	return extra, nil
}

// appendMembers writes extra into the encoded object known in key order,
// skipping names isKnown claims.
func appendMembers(known []byte, extra map[string]json.RawMessage, isKnown func(string) bool) ([]byte, error) {
	keys := make([]string, 0, len(extra))
	for k := range extra {
		if !isKnown(k) {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return known, nil
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(known[:len(known)-1]) // drop closing brace
	for _, k := range keys {
		name, err := encodeJSON(k)
		if err != nil {
			return nil, err
		}
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(extra[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
