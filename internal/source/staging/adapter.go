package staging

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/timmy/newsdeck/internal/logger"
	"github.com/timmy/newsdeck/internal/source"
)

// ManifestFileName is the JSONL manifest file name in staging sources.
const ManifestFileName = "manifest.jsonl"

// ManifestItem is one line of manifest.jsonl.
type ManifestItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	URL         string `json:"url"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
	PublishedAt string `json:"published_at"` // RFC 3339
}

// Adapter implements source.Source for <basePath>/<sourceID>/manifest.jsonl.
type Adapter struct {
	basePath string
	sourceID string
	items    []source.NewsEntry
	loaded   bool
}

// NewAdapter creates a new staging adapter.
// Parameters:
//   - basePath: base path to the staging directory.
//   - sourceID: identifier for the staging source (its subdirectory name).
// Returns:
//   - *Adapter: initialized staging adapter.
func NewAdapter(basePath, sourceID string) *Adapter {
	return &Adapter{
		basePath: basePath,
		sourceID: sourceID,
	}
}

// GetSourceID returns the source identifier with a "staging:" prefix.
func (a *Adapter) GetSourceID() string {
	return "staging:" + a.sourceID
}

// GetDisplayName returns a human-readable name for this source.
func (a *Adapter) GetDisplayName() string {
	return fmt.Sprintf("Staging (%s)", a.sourceID)
}

// FetchBatch returns entries from the manifest in ID order.
// The cursor is the decimal index of the first entry to return.
func (a *Adapter) FetchBatch(ctx context.Context, cursor string, limit int) ([]source.NewsEntry, string, error) {
	if !a.loaded {
		if err := a.loadItems(ctx); err != nil {
			return nil, "", fmt.Errorf("failed to load staging items: %w", err)
		}
		a.loaded = true
	}

	startIndex := 0
	if cursor != "" {
		idx, err := strconv.Atoi(cursor)
		if err != nil || idx < 0 {
			return nil, "", fmt.Errorf("invalid cursor %q", cursor)
		}
		startIndex = idx
	}
	if startIndex >= len(a.items) {
		return []source.NewsEntry{}, "", nil
	}

	endIndex := startIndex + limit
	if limit <= 0 || endIndex > len(a.items) {
		endIndex = len(a.items)
	}

	nextCursor := ""
	if endIndex < len(a.items) {
		nextCursor = strconv.Itoa(endIndex)
	}
	return a.items[startIndex:endIndex], nextCursor, nil
}

// GetTotalCount returns the number of usable entries in the manifest.
func (a *Adapter) GetTotalCount(ctx context.Context) (int, error) {
	if !a.loaded {
		if err := a.loadItems(ctx); err != nil {
			return 0, err
		}
		a.loaded = true
	}
	return len(a.items), nil
}

func (a *Adapter) loadItems(ctx context.Context) error {
	manifestPath := filepath.Join(a.basePath, a.sourceID, ManifestFileName)

	file, err := os.Open(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("manifest file not found: %s", manifestPath)
		}
		return fmt.Errorf("failed to open manifest: %w", err)
	}
	defer file.Close()

	a.items = []source.NewsEntry{}

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var item ManifestItem
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			logger.CtxWarn(ctx, "Skipping malformed manifest line %d: %v", lineNo, err)
			continue
		}
		if item.ID == "" {
			logger.CtxWarn(ctx, "Skipping manifest line %d without id", lineNo)
			continue
		}

		entry := source.NewsEntry{
			SourceID: item.ID,
			Title:    item.Title,
			Summary:  item.Summary,
			URL:      item.URL,
			ImageURL: item.ImageURL,
			Category: item.Category,
		}
		if item.PublishedAt != "" {
			ts, err := time.Parse(time.RFC3339, item.PublishedAt)
			if err != nil {
				logger.CtxWarn(ctx, "Ignoring bad published_at on manifest line %d: %v", lineNo, err)
			} else {
				entry.PublishedAt = &ts
			}
		}
		a.items = append(a.items, entry)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading manifest: %w", err)
	}

	sort.Slice(a.items, func(i, j int) bool {
		return a.items[i].SourceID < a.items[j].SourceID
	})
	return nil
}

// ListStagingSources lists the subdirectories of basePath that hold a manifest.
func ListStagingSources(basePath string) ([]string, error) {
	entries, err := os.ReadDir(basePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	var sources []string
	for _, entry := range entries {
		if entry.IsDir() {
			manifestPath := filepath.Join(basePath, entry.Name(), ManifestFileName)
			if _, err := os.Stat(manifestPath); err == nil {
				sources = append(sources, entry.Name())
			}
		}
	}
	return sources, nil
}
