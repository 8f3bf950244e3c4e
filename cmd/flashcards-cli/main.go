package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"flashcards/internal/cli"
	"flashcards/internal/config"
)

func main() {
	cfg := config.Load()

	packsDir := flag.String("packs", cfg.PacksDir, "directory containing flash card packs")
	flag.Parse()

	err := cli.Run(context.Background(), os.Stdin, os.Stdout, cli.Config{
		PacksDir: *packsDir,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
