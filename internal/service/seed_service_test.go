package service_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"nightfall/internal/network"
	"nightfall/internal/service"
)

func rssFeed(titles ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?><rss version="2.0"><channel><title>Hauntings</title>`)
	for i, title := range titles {
		fmt.Fprintf(&b, `<item><title>%s</title><link>https://example.com/%d</link></item>`, title, i)
	}
	b.WriteString(`</channel></rss>`)
	return b.String()
}

func TestSeedService_Titles(t *testing.T) {
	titles := []string{" The Grey Lady ", "", "Bell Witch"}
	for i := 0; i < 12; i++ {
		titles = append(titles, fmt.Sprintf("Legend %d", i))
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Contains(t, r.Header.Get("User-Agent"), "Nightfall")
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rssFeed(titles...)))
	}))
	defer srv.Close()

	svc := service.NewSeedService(srv.URL, network.NewClientFactory(nil))
	got := svc.Titles(context.Background())
	require.Len(t, got, service.MaxSeedTitles)
	require.Equal(t, "The Grey Lady", got[0])
	require.Equal(t, "Bell Witch", got[1])
	require.Equal(t, "Legend 7", got[9])
}

func TestSeedService_DisabledWithoutURL(t *testing.T) {
	svc := service.NewSeedService("  ", network.NewClientFactory(nil))
	require.Nil(t, svc.Titles(context.Background()))
}

func TestSeedService_FailuresAreIgnored(t *testing.T) {
	handlers := map[string]http.HandlerFunc{
		"status": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"garbage": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("this is not a feed"))
		},
	}
	for name, h := range handlers {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()

			svc := service.NewSeedService(srv.URL, network.NewClientFactory(nil))
			require.Nil(t, svc.Titles(context.Background()))
		})
	}
}
