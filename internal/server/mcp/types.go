package mcp

// EmptyArgs is the input of tools without parameters.
type EmptyArgs struct{}

type PresetNameArgs struct {
	Name string `json:"name" jsonschema:"voice preset name"`
}

type PresetArgs struct {
	Preset string `json:"preset" jsonschema:"voice preset as a JSON object with PresetName and VoiceName"`
}

type SetTextArgs struct {
	Text string `json:"text" jsonschema:"text to put into the text editor"`
}

type SpeakArgs struct {
	Text   string `json:"text" jsonschema:"text to speak"`
	Preset string `json:"preset,omitempty" jsonschema:"voice preset to use; the current preset when empty"`
	Wait   bool   `json:"wait,omitempty" jsonschema:"block until playback has finished"`
}

type SaveAudioArgs struct {
	Path   string `json:"path" jsonschema:"absolute path of the audio file to write"`
	Text   string `json:"text,omitempty" jsonschema:"text to synthesize; the current text when empty"`
	Preset string `json:"preset,omitempty" jsonschema:"voice preset to use; the current preset when empty"`
}

type ReloadArgs struct {
	Kind string `json:"kind,omitempty" jsonschema:"phrase, symbol, word, preset or all (default)"`
}

// StatusResult is the JSON body of get_status.
type StatusResult struct {
	Status       string `json:"status"`
	Version      string `json:"version,omitempty"`
	Preset       string `json:"preset,omitempty"`
	TextEditMode string `json:"text_edit_mode,omitempty"`
}
