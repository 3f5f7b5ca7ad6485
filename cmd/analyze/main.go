package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Amund211/slumber/internal/irregularity"
	"github.com/Amund211/slumber/internal/ports"
)

// analyze reads sessions in the API request format and prints the regularity report
func analyze(r io.Reader, w io.Writer, useUTC bool) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("ReadAll: %w", err)
	}

	sessions, err := ports.ParseSessions(data)
	if err != nil {
		return err
	}

	report, err := irregularity.Analyze(sessions, useUTC, irregularity.DefaultWeights)
	if err != nil {
		return fmt.Errorf("failed to analyze sessions: %w", err)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ports.RegularityReportToResponse(report))
}

func main() {
	useUTC := flag.Bool("utc", false, "evaluate sessions in UTC instead of their recorded zones")
	flag.Parse()

	input := io.Reader(os.Stdin)
	if flag.NArg() > 0 && flag.Arg(0) != "-" {
		file, err := os.Open(flag.Arg(0))
		if err != nil {
			log.Fatalf("Failed to open input: %v", err)
		}
		defer file.Close()
		input = file
	}

	if err := analyze(input, os.Stdout, *useUTC); err != nil {
		log.Fatalf("Failed to analyze: %v", err)
	}
}
