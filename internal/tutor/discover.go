package tutor

import (
	"log"
	"time"

	lannet "ChalkBoard/internal/net"
)

// Discover looks for a tutor service announced over mDNS and returns the
// base URL of the first one that answers.
func Discover(timeout time.Duration) (string, error) {
	var first string
	err := lannet.Browse(lannet.TutorService, timeout, func(addr string) {
		if first == "" {
			first = addr
		}
	})
	if err != nil {
		return "", err
	}
	if first == "" {
		return "", ErrNotFound
	}
	url := "http://" + first
	log.Printf("[TUTOR] Discovered service at %s", url)
	return url, nil
}
