package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Service is a correction service found on the network
type Service struct {
	// Instance is the advertised instance name (e.g., "correctme-stub on laptop")
	Instance string

	// Hostname is the mDNS hostname (e.g., "laptop.local.")
	Hostname string

	// IP is the service address, IPv4 preferred
	IP string

	Port int

	// Path is the correction endpoint path from the TXT record
	Path string

	// Metadata contains the TXT record key=value pairs
	Metadata map[string]string

	DiscoveredAt time.Time
}

// String returns a human-readable description
func (s *Service) String() string {
	return fmt.Sprintf("%s (%s) at %s", s.Instance, s.Hostname, s.Endpoint())
}

// BaseURL returns the HTTP base URL of the service
func (s *Service) BaseURL() string {
	return "http://" + net.JoinHostPort(s.IP, strconv.Itoa(s.Port))
}

// Endpoint returns the full correction URL
func (s *Service) Endpoint() string {
	return s.BaseURL() + s.Path
}

// GetMetadata returns a TXT value, or "" if absent
func (s *Service) GetMetadata(key string) string {
	if s.Metadata == nil {
		return ""
	}
	return s.Metadata[key]
}
