package session

import (
	"fmt"

	"github.com/emmett/aivoice/internal/aivoice"
	"github.com/emmett/aivoice/internal/logging"
)

// InitializeAPI initializes the API for serviceName, or for the first
// available host when it is empty. It does nothing when the control is
// already initialized and never starts or connects the host.
func InitializeAPI(c *aivoice.Control, serviceName string) error {
	initialized, err := c.IsInitialized()
	if err != nil {
		return fmt.Errorf("failed to query initialization: %w", err)
	}
	if initialized {
		return nil
	}
	if serviceName == "" {
		hosts, err := c.GetAvailableHostNames()
		if err != nil {
			return fmt.Errorf("failed to list hosts: %w", err)
		}
		if len(hosts) == 0 {
			return fmt.Errorf("no A.I.VOICE host is available")
		}
		serviceName = hosts[0]
	}
	logging.Component("host").WithField("service", serviceName).Debug("initializing API")
	if err := c.Initialize(serviceName); err != nil {
		return fmt.Errorf("failed to initialize %q: %w", serviceName, err)
	}
	return nil
}

// ConnectHost brings the host to a connected state.
//
// It runs InitializeAPI, launches the host program when it is not running
// and autoStart is set, and connects unless the host already reports Idle
// or Busy.
func ConnectHost(c *aivoice.Control, serviceName string, autoStart bool) error {
	log := logging.Component("host")

	if err := InitializeAPI(c, serviceName); err != nil {
		return err
	}

	status, err := c.Status()
	if err != nil {
		return fmt.Errorf("failed to read host status: %w", err)
	}
	if status == aivoice.NotRunning {
		if !autoStart {
			return fmt.Errorf("host is not running")
		}
		log.Info("starting host program")
		if err := c.StartHost(); err != nil {
			return fmt.Errorf("failed to start host: %w", err)
		}
		if status, err = c.Status(); err != nil {
			return fmt.Errorf("failed to read host status: %w", err)
		}
	}

	if status == aivoice.Idle || status == aivoice.Busy {
		return nil
	}
	log.Debug("connecting to host")
	if err := c.Connect(); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	return nil
}
