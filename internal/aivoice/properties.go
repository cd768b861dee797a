package aivoice

// CurrentVoicePresetName returns the preset selected in the host.
func (c *Control) CurrentVoicePresetName() (string, error) {
	return c.getString("CurrentVoicePresetName")
}

// SetCurrentVoicePresetName selects a preset in the host.
func (c *Control) SetCurrentVoicePresetName(name string) error {
	return c.put("CurrentVoicePresetName", name)
}

// MasterControl returns the master control values as a JSON string.
func (c *Control) MasterControl() (string, error) {
	return c.getString("MasterControl")
}

// SetMasterControl writes the master control values from a JSON string.
func (c *Control) SetMasterControl(value string) error {
	return c.put("MasterControl", value)
}

// IsInitialized reports whether Initialize has been called on the API.
func (c *Control) IsInitialized() (bool, error) {
	v, err := c.get("IsInitialized")
	if err != nil {
		return false, err
	}
	return asBool("IsInitialized", v)
}

// Text returns the input text of the text-mode editor.
func (c *Control) Text() (string, error) {
	return c.getString("Text")
}

// SetText replaces the input text of the text-mode editor.
func (c *Control) SetText(text string) error {
	return c.put("Text", text)
}

// TextEditMode returns the selected input representation.
func (c *Control) TextEditMode() (TextEditMode, error) {
	v, err := c.get("TextEditMode")
	if err != nil {
		return 0, err
	}
	return textEditModeFromRaw(v)
}

// SetTextEditMode selects the input representation.
func (c *Control) SetTextEditMode(mode TextEditMode) error {
	return c.put("TextEditMode", int32(mode))
}

// TextSelectionLength returns the number of selected characters.
func (c *Control) TextSelectionLength() (int, error) {
	return c.getInt("TextSelectionLength")
}

func (c *Control) SetTextSelectionLength(n int) error {
	return c.put("TextSelectionLength", int32(n))
}

// TextSelectionStart returns the selection start position.
func (c *Control) TextSelectionStart() (int, error) {
	return c.getInt("TextSelectionStart")
}

func (c *Control) SetTextSelectionStart(n int) error {
	return c.put("TextSelectionStart", int32(n))
}

// Version returns the host program version.
func (c *Control) Version() (string, error) {
	return c.getString("Version")
}

// Status returns the host status as currently reported by the host.
func (c *Control) Status() (HostStatus, error) {
	v, err := c.get("Status")
	if err != nil {
		return NotConnected, err
	}
	return ParseHostStatus(v), nil
}

// VoiceNames returns the voices available to the host.
func (c *Control) VoiceNames() ([]string, error) {
	v, err := c.get("VoiceNames")
	if err != nil {
		return nil, err
	}
	return asStringSlice("VoiceNames", v)
}

// VoicePresetNames returns the registered preset names.
func (c *Control) VoicePresetNames() ([]string, error) {
	v, err := c.get("VoicePresetNames")
	if err != nil {
		return nil, err
	}
	return asStringSlice("VoicePresetNames", v)
}

func (c *Control) getString(name string) (string, error) {
	v, err := c.get(name)
	if err != nil {
		return "", err
	}
	return asString(name, v)
}

func (c *Control) getInt(name string) (int, error) {
	v, err := c.get(name)
	if err != nil {
		return 0, err
	}
	return asInt(name, v)
}
