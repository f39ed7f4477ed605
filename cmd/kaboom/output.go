package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/klardotsh/kaboom/pkg/feed"
)

// printFeed dumps feed metadata in the given format: human, json or yaml
func printFeed(w io.Writer, f *feed.Feed, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(f.Summary()); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case "yaml":
		data, err := yaml.Marshal(f.Summary())
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		keyColor := color.New(color.FgCyan)
		for _, line := range strings.Split(f.HumanText(), "\n") {
			key, val, _ := strings.Cut(line, "=")
			if _, err := fmt.Fprintf(w, "%s=%s\n", keyColor.Sprint(key), val); err != nil {
				return err
			}
		}
		return nil
	}
}
