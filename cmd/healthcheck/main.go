// Package main provides the container healthcheck. It exits 0 when
// the server's liveness route answers 200.
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/garyellow/kampus-chat-go/internal/config"
)

func main() {
	port := os.Getenv(config.EnvPort)
	if port == "" {
		port = config.DefaultPort
	}

	client := &http.Client{Timeout: 8 * time.Second}

	resp, err := client.Get(livenessURL(port))
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}

	os.Exit(0)
}

func livenessURL(port string) string {
	return fmt.Sprintf("http://localhost:%s/", port)
}
