package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"taxprep-backend/internal/pdfform"
)

func main() {
	pdfPath := flag.String("pdf", "", "Path to an IRS form PDF")
	asJSON := flag.Bool("json", false, "Print the report as JSON")
	outPath := flag.String("out", "", "Path to write the report (optional)")
	flag.Parse()

	if strings.TrimSpace(*pdfPath) == "" {
		exitErr("pdf path is required")
	}

	rep, err := pdfform.InspectFile(context.Background(), *pdfPath)
	if err != nil {
		exitErr(err.Error())
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			exitErr(fmt.Sprintf("create output: %v", err))
		}
		defer f.Close()
		out = f
	}

	if *asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			exitErr(fmt.Sprintf("encode report: %v", err))
		}
		return
	}
	if err := pdfform.WriteText(out, rep); err != nil {
		exitErr(fmt.Sprintf("write report: %v", err))
	}
}

func exitErr(msg string) {
	fmt.Fprintln(os.Stderr, "error:", msg)
	os.Exit(1)
}
