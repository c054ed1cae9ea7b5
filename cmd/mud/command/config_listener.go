package command

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"log/slog"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-service"
	"github.com/pixil98/simple-mud/internal/listener"
	"golang.org/x/crypto/ssh"
)

// ListenerType selects the wire protocol for one listener entry.
type ListenerType string

const (
	ListenerTypeTelnet ListenerType = "telnet"
	ListenerTypeSSH    ListenerType = "ssh"
)

type ListenerConfig struct {
	Protocol    ListenerType `json:"protocol"`
	Port        uint16       `json:"port"`
	HostKeyPath string       `json:"host_key_path,omitempty"`
}

func (c *ListenerConfig) validate() error {
	el := errors.NewErrorList()

	switch c.Protocol {
	case ListenerTypeTelnet, ListenerTypeSSH:
	default:
		el.Add(fmt.Errorf("unknown protocol %q", c.Protocol))
	}

	if c.Port == 0 {
		el.Add(fmt.Errorf("port must be set to a positive integer"))
	}

	return el.Err()
}

func (c *ListenerConfig) BuildListener(cm *listener.ConnectionManager) (service.Worker, error) {
	switch c.Protocol {
	case ListenerTypeTelnet:
		return listener.NewTelnetListener(c.Port, cm), nil
	case ListenerTypeSSH:
		key, err := c.hostKey()
		if err != nil {
			return nil, fmt.Errorf("setting up ssh host key: %w", err)
		}
		return listener.NewSshListener(c.Port, cm, key), nil
	default:
		return nil, fmt.Errorf("unknown protocol %q", c.Protocol)
	}
}

// hostKey loads the configured ssh host key, or generates a throwaway ed25519
// key when none is configured. An ephemeral key means clients see a new host
// identity on every restart, hence the warning.
func (c *ListenerConfig) hostKey() (ssh.Signer, error) {
	if c.HostKeyPath != "" {
		pem, err := os.ReadFile(c.HostKeyPath)
		if err != nil {
			return nil, fmt.Errorf("reading host key %q: %w", c.HostKeyPath, err)
		}
		return ssh.ParsePrivateKey(pem)
	}

	slog.Warn("no host_key_path configured for ssh listener, generating ephemeral key")

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generating key: %w", err)
	}
	return ssh.NewSignerFromKey(priv)
}
