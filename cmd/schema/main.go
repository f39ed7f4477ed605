// Command schema writes the JSON schema of the kaboom config file
package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/klardotsh/kaboom/pkg/config"
)

type options struct {
	Output string `short:"o" long:"output" default:"schema.json" description:"schema file to write"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	data, err := json.MarshalIndent(config.GenerateSchema(), "", "  ")
	if err != nil {
		log.Fatalf("[ERROR] can't marshal schema: %v", err)
	}

	if err := os.WriteFile(opts.Output, append(data, '\n'), 0o600); err != nil { //nolint:gosec // schema file is not sensitive
		log.Fatalf("[ERROR] can't write %s: %v", opts.Output, err)
	}
	log.Printf("[INFO] schema written to %s", opts.Output)
}
