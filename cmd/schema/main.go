// schema generates the JSON schema of the configuration file
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/umputun/myfeeds/pkg/config"
)

type opts struct {
	Check bool `long:"check" description:"fail if the existing schema file is out of date"`
	Args  struct {
		Output string `positional-arg-name:"output" description:"schema file, schema.json by default"`
	} `positional-args:"yes"`
}

func main() {
	var o opts
	if _, err := flags.Parse(&o); err != nil {
		os.Exit(1)
	}
	if o.Args.Output == "" {
		o.Args.Output = "schema.json"
	}

	data, err := generate()
	if err != nil {
		log.Fatalf("failed to generate schema: %v", err)
	}

	if o.Check {
		existing, err := os.ReadFile(o.Args.Output)
		if err != nil {
			log.Fatalf("failed to read schema file: %v", err)
		}
		if !bytes.Equal(bytes.TrimSpace(existing), bytes.TrimSpace(data)) {
			log.Fatalf("%s is out of date, run go generate ./pkg/config", o.Args.Output)
		}
		fmt.Printf("Schema %s is up to date\n", o.Args.Output)
		return
	}

	if err := os.WriteFile(o.Args.Output, data, 0o600); err != nil { //nolint:gosec // schema file is not sensitive
		log.Fatalf("failed to write schema file: %v", err)
	}
	fmt.Printf("Schema generated successfully at %s\n", o.Args.Output)
}

func generate() ([]byte, error) {
	data, err := json.MarshalIndent(config.GenerateSchema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}
