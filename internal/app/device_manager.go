package app

import (
	"fmt"
	"io"
	"os"

	"github.com/emmett/aivoice/internal/audio"
)

// DeviceManager handles audio device selection and listing
type DeviceManager struct {
	list func() ([]audio.DeviceInfo, error)
	out  io.Writer
}

// NewDeviceManager creates a new DeviceManager instance
func NewDeviceManager() *DeviceManager {
	return &DeviceManager{list: audio.ListDevices, out: os.Stdout}
}

// ListDevices prints all available playback devices
func (dm *DeviceManager) ListDevices() error {
	devices, err := dm.list()
	if err != nil {
		return fmt.Errorf("failed to list devices: %w", err)
	}

	if len(devices) == 0 {
		fmt.Fprintln(dm.out, "No audio playback devices found.")
		return fmt.Errorf("no devices found")
	}

	fmt.Fprintf(dm.out, "Found %d playback device(s):\n\n", len(devices))
	for i, device := range devices {
		marker := ""
		if device.IsDefault {
			marker = " [DEFAULT]"
		}
		fmt.Fprintf(dm.out, "%d. %s%s\n", i+1, device.Name, marker)
		fmt.Fprintf(dm.out, "   ID: %s\n", device.ID)
	}

	fmt.Fprintln(dm.out)
	fmt.Fprintln(dm.out, "To play locally on a specific device, run:")
	fmt.Fprintf(dm.out, "  aivoice speak --local --device %q <text>\n", devices[0].Name)
	return nil
}

// SelectDevice selects a playback device by name/ID, or returns the default
func (dm *DeviceManager) SelectDevice(deviceName string) (*audio.DeviceInfo, error) {
	devices, err := dm.list()
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	if deviceName == "" {
		return audio.DefaultDevice(devices)
	}
	return audio.MatchDevice(devices, deviceName)
}
