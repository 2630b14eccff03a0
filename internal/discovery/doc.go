// Package discovery finds correction services on the local network with
// multicast DNS, and lets a service announce itself.
//
// Services register as "_correctme._tcp" in the "local." domain. The TXT
// record "path=/spellcheck" gives the correction endpoint path; other
// key=value pairs are kept as metadata.
//
// # Usage Example
//
//	scanner := discovery.NewScanner()
//	services, err := scanner.Scan(ctx)
//	if err != nil {
//	    return err
//	}
//	for _, svc := range services {
//	    fmt.Printf("%s at %s\n", svc.Instance, svc.Endpoint())
//	}
//
// # Network Requirements
//
//   - Requires multicast support on the network interface
//   - Services must be on the same local network segment
//   - Firewall must allow mDNS (UDP port 5353)
package discovery
