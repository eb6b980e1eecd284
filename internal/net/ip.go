package net

import (
	"fmt"
	"net"
)

// OutgoingIP is the address other machines on the LAN should use to reach
// this one: the source address of the default route, or the first usable
// interface address when there is no route out.
func OutgoingIP() net.IP {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return firstIPv4()
	}
	defer conn.Close()

	if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok && addr.IP.To4() != nil {
		return addr.IP.To4()
	}
	return firstIPv4()
}

// ServiceURL is the http base URL for a service on this host's port.
func ServiceURL(port int) string {
	return fmt.Sprintf("http://%s:%d", OutgoingIP(), port)
}
