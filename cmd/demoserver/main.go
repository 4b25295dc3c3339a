// Command demoserver starts a local demo site for exercising the trust scorer.
// Usage: go run ./cmd/demoserver [port]
// Default port: 9999
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/ravik808/sitetrust/internal/demoserver"
)

func main() {
	cfg := demoserver.DefaultConfig()

	// Optional: custom port from command line
	if len(os.Args) > 1 {
		port, err := strconv.Atoi(os.Args[1])
		if err != nil || port < 1 || port > 65535 {
			log.Fatalf("Invalid port: %s", os.Args[1])
		}
		cfg.Port = port
	}

	fmt.Println("===========================================")
	fmt.Println("   sitetrust Demo Site")
	fmt.Println("===========================================")
	fmt.Println()
	fmt.Println("Serves pages that can be flipped between a benign and a")
	fmt.Println("phishing-style variant. Run sitetrustd with the http capture")
	fmt.Println("backend and analyze these pages to watch the score change:")
	fmt.Println()
	fmt.Printf("  sitetrustd -capture http\n")
	fmt.Printf("  curl -d '{\"url\":\"http://localhost:%d/login\"}' localhost:8080/api/v1/analyze\n", cfg.Port)
	fmt.Println()

	server := demoserver.NewDemoServer(cfg)
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
