package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/your-org/boutique-storefront/internal/pkg/flow"
)

// Usage: go run scripts/generate_flow_secret.go [bytes]
func main() {
	size := 48
	if len(os.Args) > 1 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil || n < 32 {
			log.Fatal("Secret size must be a number of at least 32 bytes")
		}
		size = n
	}

	raw := make([]byte, size)
	if _, err := rand.Read(raw); err != nil {
		log.Fatal("Error reading random bytes:", err)
	}
	secret := base64.RawURLEncoding.EncodeToString(raw)

	// round-trip through the sealer the gateway will use
	sealer, err := flow.NewSealer(secret)
	if err != nil {
		log.Fatal("Secret rejected by sealer:", err)
	}
	sealed, err := sealer.Seal("check", []byte("ok"))
	if err != nil {
		log.Fatal("Seal failed:", err)
	}
	if _, err := sealer.Open("check", sealed); err != nil {
		log.Fatal("Open failed:", err)
	}

	fmt.Printf("FLOW_SECRET=%s\n", secret)
	fmt.Println("✅ Secret verified")
}
