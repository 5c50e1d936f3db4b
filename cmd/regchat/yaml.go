package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// YAMLLoader is a kong.ConfigurationLoader for flat YAML files keyed by
// flag name in snake_case, e.g. chunk_size for --chunk-size. Lists are
// accepted for repeatable flags.
func YAMLLoader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML configuration: %w", err)
	}

	return kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		raw, ok := values[strings.ReplaceAll(flag.Name, "-", "_")]
		if !ok || raw == nil {
			return nil, nil
		}
		return flagValue(raw, flag), nil
	}), nil
}

// flagValue renders a YAML value in the form Kong parses from the command
// line. List items are joined with the flag's separator.
func flagValue(raw any, flag *kong.Flag) string {
	items, ok := raw.([]any)
	if !ok {
		return fmt.Sprint(raw)
	}

	sep := ","
	if flag.Tag != nil && flag.Tag.Sep > 0 {
		sep = string(flag.Tag.Sep)
	}

	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprint(item)
	}
	return strings.Join(parts, sep)
}
