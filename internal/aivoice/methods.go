package aivoice

// AddListItem appends a row to the list-mode editor.
func (c *Control) AddListItem(voicePresetName, text string) error {
	return c.void("AddListItem", voicePresetName, text)
}

// InsertListItem inserts a row at the list selection.
func (c *Control) InsertListItem(voicePresetName, text string) error {
	return c.void("InsertListItem", voicePresetName, text)
}

// RemoveListItem removes the selected list row.
func (c *Control) RemoveListItem(index int) error {
	return c.void("RemoveListItem", int32(index))
}

// ClearListItems removes every list row.
func (c *Control) ClearListItems() error {
	return c.void("ClearListItems")
}

// GetListCount returns the number of list rows.
func (c *Control) GetListCount() (int, error) {
	return c.callInt("GetListCount")
}

// GetListSelectionCount returns the number of selected list rows.
func (c *Control) GetListSelectionCount() (int, error) {
	return c.callInt("GetListSelectionCount")
}

// GetListSelectionIndices returns the indices of the selected list rows.
func (c *Control) GetListSelectionIndices() ([]int, error) {
	v, err := c.call("GetListSelectionIndices")
	if err != nil {
		return nil, err
	}
	return asIntSlice("GetListSelectionIndices", v)
}

// SetListSelectionIndex selects a single list row. The host only exposes
// the array form, so the index is sent as a one-element array.
func (c *Control) SetListSelectionIndex(index int) error {
	return c.SetListSelectionIndices([]int{index})
}

// SetListSelectionIndices selects an arbitrary set of list rows.
func (c *Control) SetListSelectionIndices(indices []int) error {
	arr := make([]int32, len(indices))
	for i, idx := range indices {
		arr[i] = int32(idx)
	}
	return c.void("SetListSelectionIndices", arr)
}

// SetListSelectionRange selects length rows starting at startIndex (0-based).
func (c *Control) SetListSelectionRange(startIndex, length int) error {
	return c.void("SetListSelectionRange", int32(startIndex), int32(length))
}

// GetListSentence returns the sentence of a list row.
func (c *Control) GetListSentence(index int) (string, error) {
	v, err := c.call("GetListSentence", int32(index))
	if err != nil {
		return "", err
	}
	return asString("GetListSentence", v)
}

// SetListSentence sets the sentence of the selected list row. When
// synthesize is true the host re-synthesizes the row.
func (c *Control) SetListSentence(sentence string, synthesize bool) error {
	return c.void("SetListSentence", sentence, synthesize)
}

// GetListVoicePreset returns the preset name of the selected list row.
func (c *Control) GetListVoicePreset() (string, error) {
	v, err := c.call("GetListVoicePreset")
	if err != nil {
		return "", err
	}
	return asString("GetListVoicePreset", v)
}

// SetListVoicePreset sets the preset name of the selected list row.
func (c *Control) SetListVoicePreset(voicePresetName string) error {
	return c.void("SetListVoicePreset", voicePresetName)
}

// GetPlayTime returns the playback length of the current text in milliseconds.
func (c *Control) GetPlayTime() (int, error) {
	return c.callInt("GetPlayTime")
}

// AddVoicePreset creates a new preset from p.
func (c *Control) AddVoicePreset(p VoicePreset) error {
	payload, err := p.JSON()
	if err != nil {
		return err
	}
	return c.void("AddVoicePreset", payload)
}

// SetVoicePreset overwrites an existing preset with the values in p.
func (c *Control) SetVoicePreset(p VoicePreset) error {
	payload, err := p.JSON()
	if err != nil {
		return err
	}
	return c.void("SetVoicePreset", payload)
}

// GetVoicePresetJSON returns the named preset as the host's JSON string.
func (c *Control) GetVoicePresetJSON(presetName string) (string, error) {
	v, err := c.call("GetVoicePreset", presetName)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", &ConversionError{Member: "GetVoicePreset", Value: v, Want: "JSON string"}
	}
	return s, nil
}

// GetVoicePreset returns the named preset.
func (c *Control) GetVoicePreset(presetName string) (VoicePreset, error) {
	s, err := c.GetVoicePresetJSON(presetName)
	if err != nil {
		return VoicePreset{}, err
	}
	return ParseVoicePreset(s)
}

// Play starts or pauses playback. It returns as soon as the host accepted
// the request, not when playback finishes.
func (c *Control) Play() error {
	return c.void("Play")
}

// Stop stops playback.
func (c *Control) Stop() error {
	return c.void("Stop")
}

// SaveAudioToFile saves the synthesized audio of the current text.
//
// The host picks the input representation it is currently in. If the
// extension of path does not match the host's audio format, the host
// appends the right one; if the host is configured to name files by rule,
// path is ignored entirely.
func (c *Control) SaveAudioToFile(path string) error {
	return c.void("SaveAudioToFile", path)
}

// Connect connects to the host program.
//
// The host disconnects by itself when no API call is made for ten minutes
// after connecting.
func (c *Control) Connect() error {
	return c.void("Connect")
}

// Disconnect closes the connection to the host program.
func (c *Control) Disconnect() error {
	return c.void("Disconnect")
}

// GetAvailableHostNames returns the names of the hosts that can be used
// with Initialize.
func (c *Control) GetAvailableHostNames() ([]string, error) {
	v, err := c.call("GetAvailableHostNames")
	if err != nil {
		return nil, err
	}
	return asStringSlice("GetAvailableHostNames", v)
}

// Initialize initializes the API for the given host.
func (c *Control) Initialize(serviceName string) error {
	return c.void("Initialize", serviceName)
}

// StartHost launches the host program.
func (c *Control) StartHost() error {
	return c.void("StartHost")
}

// TerminateHost exits the host program.
func (c *Control) TerminateHost() error {
	return c.void("TerminateHost")
}

func (c *Control) ReloadPhraseDictionary() error {
	return c.void("ReloadPhraseDictionary")
}

func (c *Control) ReloadSymbolDictionary() error {
	return c.void("ReloadSymbolDictionary")
}

func (c *Control) ReloadWordDictionary() error {
	return c.void("ReloadWordDictionary")
}

func (c *Control) ReloadVoicePreset() error {
	return c.void("ReloadVoicePreset")
}

func (c *Control) void(name string, args ...any) error {
	_, err := c.call(name, args...)
	return err
}

func (c *Control) callInt(name string) (int, error) {
	v, err := c.call(name)
	if err != nil {
		return 0, err
	}
	return asInt(name, v)
}
