package discovery

import (
	"fmt"

	"github.com/grandcat/zeroconf"

	"github.com/correctme/correctme/internal/version"
)

// Advertisement is a running mDNS registration
type Advertisement struct {
	server *zeroconf.Server
}

// TXTRecords builds the TXT record announced for a service
func TXTRecords(path string) []string {
	if path == "" {
		path = DefaultPath
	}
	return []string{
		"path=" + path,
		"version=" + version.Version,
	}
}

// Advertise announces a correction service on port until Shutdown is called
func Advertise(instance string, port int, path string) (*Advertisement, error) {
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid port %d", port)
	}

	server, err := zeroconf.Register(instance, ServiceType, ServiceDomain, port, TXTRecords(path), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}
	return &Advertisement{server: server}, nil
}

// Shutdown withdraws the announcement
func (a *Advertisement) Shutdown() {
	if a != nil && a.server != nil {
		a.server.Shutdown()
	}
}
