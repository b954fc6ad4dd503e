package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"agency-site-be/internal/dto"
	"agency-site-be/internal/service"
	"agency-site-be/pkg/lexical"
)

// seedPosts upserts posts/*.md. The file name is the slug unless the
// frontmatter sets one.
func seedPosts(ctx context.Context, posts service.IPostService, dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "posts", "*.md"))
	if err != nil {
		return err
	}

	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		_, front := lexical.FromMarkdown(src)

		req := &dto.UpsertPostRequest{
			Slug:     stringField(front, "slug", strings.TrimSuffix(filepath.Base(path), ".md")),
			Title:    stringField(front, "title", ""),
			Excerpt:  stringField(front, "excerpt", ""),
			Author:   stringField(front, "author", ""),
			Status:   stringField(front, "status", "published"),
			Markdown: string(src),
		}
		if tags, ok := front["tags"].([]interface{}); ok {
			for _, t := range tags {
				req.Tags = append(req.Tags, fmt.Sprint(t))
			}
		}
		if at := stringField(front, "published_at", ""); at != "" {
			t, err := time.Parse(time.RFC3339, at)
			if err != nil {
				return fmt.Errorf("%s: published_at: %w", path, err)
			}
			req.PublishedAt = &t
		}

		res, err := posts.Upsert(ctx, req)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		log.Printf("Seeded post: %s (created=%t)", res.Slug, res.Created)
	}
	return nil
}

func stringField(front map[string]interface{}, key, fallback string) string {
	if v, ok := front[key]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return fallback
}

// markdownFields replaces {"markdown": "..."} objects with the document the
// markdown converts to.
func markdownFields(v interface{}) (interface{}, error) {
	switch val := v.(type) {
	case map[string]interface{}:
		if md, ok := val["markdown"].(string); ok && len(val) == 1 {
			doc, _ := lexical.FromMarkdown([]byte(md))
			raw, err := lexical.Encode(doc)
			if err != nil {
				return nil, err
			}
			var out map[string]interface{}
			err = json.Unmarshal(raw, &out)
			return out, err
		}
		for k, child := range val {
			converted, err := markdownFields(child)
			if err != nil {
				return nil, err
			}
			val[k] = converted
		}
	case []interface{}:
		for i, child := range val {
			converted, err := markdownFields(child)
			if err != nil {
				return nil, err
			}
			val[i] = converted
		}
	}
	return v, nil
}
