package main

import (
	"context"
	"io"

	"github.com/fwojciec/pagedigest"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Source    pagedigest.URLSource
	Extractor pagedigest.BatchExtractor

	// Stores receive every extracted page. May be empty.
	Stores []pagedigest.PageStore

	// Pages reads previously stored pages. Set only with --db.
	Pages pagedigest.PageService
}

// ExtractCmd extracts pages and prints them.
type ExtractCmd struct {
	URLs    []string
	Sitemap bool
	Preview bool
	Format  string
}

// HistoryCmd prints the most recently stored version of each URL.
type HistoryCmd struct {
	URLs   []string
	Format string
}
