package timeutils

import (
	"net"
	"time"

	"github.com/beevik/ntp"
	"github.com/pkg/errors"
)

// DefaultNTPTimeout bounds the drift check query.
const DefaultNTPTimeout = 5 * time.Second

// CheckDrift queries an NTP server once and returns its validated response.
// The clock offset is only reported; it never changes the system time.
func CheckDrift(server string, timeout time.Duration) (*ntp.Response, error) {
	response, err := ntp.QueryWithOptions(server, ntp.QueryOptions{Timeout: driftTimeout(timeout)})
	if err != nil {
		return nil, errors.Wrapf(err, "query NTP server %s", server)
	}
	if err := response.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid response from NTP server %s", server)
	}
	return response, nil
}

func driftTimeout(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return DefaultNTPTimeout
	}
	return timeout
}

// ServerIP resolves server to its first IPv4 address. IP literals are
// returned unchanged.
func ServerIP(server string) (string, error) {
	if net.ParseIP(server) != nil {
		return server, nil
	}
	ips, err := net.LookupIP(server)
	if err != nil {
		return "", err
	}
	for _, ip := range ips {
		if ipv4 := ip.To4(); ipv4 != nil {
			return ipv4.String(), nil
		}
	}
	return "", errors.Errorf("no IPv4 address found for server %s", server)
}
