package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/ajroetker/vc2decode"
)

func main() {
	inputPath := flag.String("input", "-", "Input VC-2 stream path, or - for stdin")
	outputPath := flag.String("output", "-", "Output path, or - for stdout")
	mode := flag.String("mode", "decoded", "Output mode: decoded, transform, quantised, indices")
	verbose := flag.Bool("verbose", false, "Enable verbose decode logging")
	flag.Parse()

	logLevel := slog.LevelWarn
	if *verbose {
		logLevel = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	outputMode, err := parseOutputMode(*mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.PrintDefaults()
		os.Exit(1)
	}

	in := os.Stdin
	if *inputPath != "-" {
		f, err := os.Open(*inputPath)
		if err != nil {
			log.Fatalf("vc2decode: %v", err)
		}
		defer f.Close()
		in = f
	}

	out := os.Stdout
	if *outputPath != "-" {
		f, err := os.Create(*outputPath)
		if err != nil {
			log.Fatalf("vc2decode: %v", err)
		}
		defer f.Close()
		out = f
	}

	driver := vc2decode.NewDriver(vc2decode.Config{
		Input:   in,
		Output:  out,
		Mode:    outputMode,
		Verbose: *verbose,
	})

	if err := driver.Run(); err != nil {
		log.Fatalf("vc2decode: %v", err)
	}
}

func parseOutputMode(s string) (vc2decode.OutputMode, error) {
	switch s {
	case "decoded":
		return vc2decode.OutputDecoded, nil
	case "transform":
		return vc2decode.OutputTransform, nil
	case "quantised":
		return vc2decode.OutputQuantised, nil
	case "indices":
		return vc2decode.OutputIndices, nil
	default:
		return 0, fmt.Errorf("vc2decode: unknown -mode %q (want decoded, transform, quantised, or indices)", s)
	}
}
