package server

import (
	"os"
	"strings"

	"github.com/google/uuid"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// ReplicaID names this process when it stamps merged records.
	// Empty means derive one from the host name.
	ReplicaID string `mapstructure:"replica_id" default:""`
}

// Replica returns the configured replica id, or "<hostname>-<uuid prefix>" when none
// is configured.
func (c Config) Replica() string {
	if id := strings.TrimSpace(c.ReplicaID); id != "" {
		return id
	}
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "daysync"
	}
	return host + "-" + uuid.NewString()[:8]
}
