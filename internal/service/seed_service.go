package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"nightfall/internal/config"
	"nightfall/internal/logger"
	"nightfall/internal/network"
)

// MaxSeedTitles bounds the inspiration lines offered to the legend prompt.
const MaxSeedTitles = 10

const seedFetchTimeout = 15 * time.Second

// SeedService supplies optional inspiration for the legend variant.
type SeedService interface {
	// Titles returns recent item titles, or nil when unavailable.
	Titles(ctx context.Context) []string
}

type seedService struct {
	feedURL string
	clients *network.ClientFactory
}

// NewSeedService creates a seed service. An empty feedURL disables it.
func NewSeedService(feedURL string, clients *network.ClientFactory) SeedService {
	return &seedService{feedURL: strings.TrimSpace(feedURL), clients: clients}
}

func (s *seedService) Titles(ctx context.Context) []string {
	if s.feedURL == "" {
		return nil
	}
	titles, err := s.fetch(ctx)
	if err != nil {
		logger.Warn("seed feed fetch failed", "module", "service", "action", "fetch", "resource", "seed", "result", "failed", "url", s.feedURL, "error", err)
		return nil
	}
	logger.Debug("seed feed fetched", "module", "service", "action", "fetch", "resource", "seed", "result", "ok", "count", len(titles))
	return titles
}

func (s *seedService) fetch(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, seedFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.feedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", config.AppName+"/"+config.AppVersion)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.8")

	resp, err := s.clients.NewHTTPClient(ctx, seedFetchTimeout).Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	parsed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	titles := make([]string, 0, MaxSeedTitles)
	for _, item := range parsed.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		titles = append(titles, title)
		if len(titles) == MaxSeedTitles {
			break
		}
	}
	return titles, nil
}
