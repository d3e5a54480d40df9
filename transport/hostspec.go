package transport

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseHostSpec parses a legacy relay list specification into an ordered
// sequence of endpoints. Entries are separated by ";" and an entry may carry
// an explicit port after its last ":" (e.g. "a.example.com;b.example.com:2525").
// Entries without a port use DefaultPort. Empty entries are skipped; an
// entirely empty specification is an error.
func ParseHostSpec(spec string) ([]Endpoint, error) {
	var endpoints []Endpoint

	for _, entry := range strings.Split(spec, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		ep := Endpoint{Host: entry, Port: DefaultPort}
		if idx := strings.LastIndex(entry, ":"); idx >= 0 {
			port, err := strconv.Atoi(entry[idx+1:])
			if err != nil {
				return nil, fmt.Errorf("invalid port in host entry %q", entry)
			}
			if port < 1 || port > 65535 {
				return nil, fmt.Errorf("port out of range in host entry %q", entry)
			}
			ep.Host = entry[:idx]
			ep.Port = port
		}
		if ep.Host == "" {
			return nil, fmt.Errorf("missing host in entry %q", entry)
		}

		endpoints = append(endpoints, ep)
	}

	if len(endpoints) == 0 {
		return nil, fmt.Errorf("no mail host configured")
	}
	return endpoints, nil
}
