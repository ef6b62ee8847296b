package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/stemsi/retro-quiz/internal/catalog"
	"github.com/stemsi/retro-quiz/internal/config"
	"github.com/stemsi/retro-quiz/internal/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	var path string
	flag.StringVar(&path, "path", cfg.CatalogPath, "Path to a YAML catalog (empty checks the embedded one)")
	flag.Parse()

	questions, err := catalog.Load(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Catalog is invalid")
		os.Exit(1)
	}

	source := path
	if source == "" {
		source = "embedded catalog"
	}
	fmt.Printf("=== %s: %d questions ===\n", source, len(questions))

	byYear := make(map[int]int)
	for _, q := range questions {
		byYear[q.Year]++
		fmt.Printf("%3d  [%d] %-60.60s -> %s\n", q.ID, q.Year, q.Question, q.CorrectOption())
	}
	fmt.Printf("Distinct years: %d\n", len(byYear))
}
