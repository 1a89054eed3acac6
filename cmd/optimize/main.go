// Command optimize runs one batting-order optimization request read
// as JSON from stdin and writes the response as JSON to stdout,
// without standing up the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/cartwright/bdnrp/internal/optimizer"
	"github.com/cartwright/bdnrp/pkg/logger"
)

func main() {
	log := logger.InitLogger("info", false)

	var req optimizer.Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		log.Fatalf("failed to decode request: %v", err)
	}

	resp, err := optimizer.Run(context.Background(), req, logrus.NewEntry(log))
	if err != nil {
		log.Fatalf("optimization failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode response: %v\n", err)
		os.Exit(1)
	}
}
