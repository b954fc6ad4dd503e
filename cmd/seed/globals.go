package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"agency-site-be/internal/dto"
	"agency-site-be/internal/service"

	"github.com/goccy/go-yaml"
)

// seedGlobals upserts every top-level key of globals.yaml as one global.
// Rich-text fields are written in markdown under a "markdown" key and
// converted to documents on the way in.
func seedGlobals(ctx context.Context, globals service.IGlobalService, dir string) error {
	raw, err := os.ReadFile(filepath.Join(dir, "globals.yaml"))
	if err != nil {
		return fmt.Errorf("read globals: %w", err)
	}

	var file map[string]map[string]interface{}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse globals: %w", err)
	}

	for key, data := range file {
		converted, err := markdownFields(data)
		if err != nil {
			return fmt.Errorf("global %s: %w", key, err)
		}
		body, err := json.Marshal(converted)
		if err != nil {
			return fmt.Errorf("global %s: %w", key, err)
		}
		if _, err := globals.Put(ctx, &dto.PutGlobalRequest{Key: key, Data: body}); err != nil {
			return fmt.Errorf("global %s: %w", key, err)
		}
		log.Printf("Seeded global: %s", key)
	}
	return nil
}
