package env

import (
	"os"
)

// PodName example: k8ssta-escrowapi-main-6868d88fbd-bz8zv. Outside kubernetes
// the hostname is used.
func PodName() string {
	if name := os.Getenv("PODNAME"); name != "" {
		return name
	}
	name, _ := os.Hostname()
	return name
}
