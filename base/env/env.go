package env

import (
	"os"
)

// PodName is the k8s pod name, falling back to the hostname outside k8s
func PodName() string {
	if name := os.Getenv("PODNAME"); name != "" {
		return name
	}
	host, _ := os.Hostname()
	return host
}

// EnvName example: staging
func EnvName() string {
	return os.Getenv("ENV_NAME")
}

// AppName example: settler
func AppName() string {
	return os.Getenv("APP_NAME")
}
