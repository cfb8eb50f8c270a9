package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/dshills/deckcritic/internal/deck"
	"github.com/dshills/deckcritic/internal/profile"
	"github.com/dshills/deckcritic/internal/schema"
)

// maxListedSchemaErrors bounds how many deck schema errors are printed.
const maxListedSchemaErrors = 5

// loadDeck reads a deck and converts failures to input errors (exit 3).
func loadDeck(path string) (*deck.Deck, error) {
	d, err := deck.Load(path)
	if err == nil {
		return d, nil
	}

	var schemaErr *deck.SchemaError
	var parseErr *deck.ParseError
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, exitError(3, "deck file not found: %s", path)
	case errors.As(err, &schemaErr):
		return nil, exitError(3, "invalid deck JSON schema in %s:\n%s", path, listSchemaErrors(schemaErr.Errors))
	case errors.As(err, &parseErr):
		return nil, exitError(3, "%s is not valid JSON: %v", path, parseErr.Err)
	}
	return nil, exitError(3, "failed to load deck: %v", err)
}

func listSchemaErrors(errs []schema.ValidationError) string {
	shown := errs
	if len(shown) > maxListedSchemaErrors {
		shown = shown[:maxListedSchemaErrors]
	}
	var b strings.Builder
	for _, e := range shown {
		fmt.Fprintf(&b, "  - %s\n", e)
	}
	if extra := len(errs) - len(shown); extra > 0 {
		fmt.Fprintf(&b, "  ... and %d more\n", extra)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// loadProfile loads a profile and converts failures to input errors (exit 3).
func loadProfile(name, dir string) (*profile.Profile, error) {
	p, err := profile.Load(name, dir)
	if err == nil {
		return p, nil
	}
	var nf *profile.NotFoundError
	if errors.As(err, &nf) {
		return nil, exitError(3, "%v\nRun 'deckcritic profiles' to see available profiles.", nf)
	}
	return nil, exitError(3, "failed to load profile: %v", err)
}

func checkThreshold(threshold int) error {
	if threshold < 0 || threshold > 100 {
		return exitError(3, "--threshold must be between 0 and 100, got %d", threshold)
	}
	return nil
}
