package aivoice

import (
	"fmt"
	"strings"
)

// HostStatus is the state reported by the host program.
type HostStatus int

const (
	NotRunning HostStatus = iota
	NotConnected
	Idle
	Busy
)

var hostStatusNames = map[HostStatus]string{
	NotRunning:   "NotRunning",
	NotConnected: "NotConnected",
	Idle:         "Idle",
	Busy:         "Busy",
}

func (s HostStatus) String() string {
	if name, ok := hostStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("HostStatus(%d)", int(s))
}

// ParseHostStatus converts a raw Status value to a HostStatus.
//
// The host reports the status either as the enum label or as its numeric
// value depending on how the object is marshaled. Anything that is not one
// of the four known states is reported as NotConnected.
func ParseHostStatus(raw any) HostStatus {
	switch v := raw.(type) {
	case HostStatus:
		if _, ok := hostStatusNames[v]; ok {
			return v
		}
	case string:
		for status, name := range hostStatusNames {
			if v == name {
				return status
			}
		}
	default:
		if n, ok := toInt64(raw); ok && n >= int64(NotRunning) && n <= int64(Busy) {
			return HostStatus(n)
		}
	}
	return NotConnected
}

// TextEditMode selects the input representation used by the host.
type TextEditMode int

const (
	TextMode TextEditMode = iota
	ListMode
)

func (m TextEditMode) String() string {
	switch m {
	case TextMode:
		return "Text"
	case ListMode:
		return "List"
	}
	return fmt.Sprintf("TextEditMode(%d)", int(m))
}

// ParseTextEditMode parses "text" or "list" (case-insensitive).
func ParseTextEditMode(s string) (TextEditMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "0":
		return TextMode, nil
	case "list", "1":
		return ListMode, nil
	}
	return 0, fmt.Errorf("unknown text edit mode %q (want text or list)", s)
}

func textEditModeFromRaw(raw any) (TextEditMode, error) {
	switch v := raw.(type) {
	case TextEditMode:
		if v == TextMode || v == ListMode {
			return v, nil
		}
	case string:
		switch v {
		case "Text":
			return TextMode, nil
		case "List":
			return ListMode, nil
		}
	default:
		if n, ok := toInt64(raw); ok && (n == int64(TextMode) || n == int64(ListMode)) {
			return TextEditMode(n), nil
		}
	}
	return 0, &ConversionError{Member: "TextEditMode", Value: raw, Want: "TextEditMode"}
}
