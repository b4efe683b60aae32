package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

func usage() {
	fmt.Println(`vertzc-go - vertz reactivity compiler
Usage: vertzc-go <command> [args]

Commands:
  compile <path> [outDir]   Transform .tsx/.jsx components under <path>
  help                      Show help

Environment:
  VERTZC_CONFIG   Path to vertzc.yaml (default: ./vertzc.yaml if present)
  VERTZC_LOG      Log level: debug, info, warn, error (default: info)`)
}

func main() {
	// A missing .env is fine; it only supplies VERTZC_* defaults.
	_ = godotenv.Load()
	setupLogging()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	switch os.Args[1] {
	case "help":
		usage()
	case "compile":
		path := "."
		if len(os.Args) >= 3 {
			path = os.Args[2]
		}
		outDir := "dist"
		if len(os.Args) >= 4 {
			outDir = os.Args[3]
		}
		if err := compile(path, outDir); err != nil {
			fmt.Fprintf(os.Stderr, "compile error: %v\n", err)
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(1)
	}
}

func setupLogging() {
	level := slog.LevelInfo
	switch os.Getenv("VERTZC_LOG") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
