// Copyright (c) 2026 PalText. All rights reserved.

// Package sitemap generates the search-engine sitemap for the marketing site.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/paltextai/backend/internal/blog"
)

// URL is a single sitemap entry.
type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// URLSet is the root element of the sitemap document.
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// featuredPostCount is how many of the newest posts get the higher priority.
const featuredPostCount = 10

// Build assembles the sitemap for the site's static pages plus the given
// published posts, assumed ordered newest first.
func Build(baseURL string, posts []*blog.Post, now time.Time) *URLSet {
	urls := make([]URL, 0, len(posts)+2)

	today := now.UTC().Format(time.DateOnly)

	urls = append(urls, URL{
		Loc:        baseURL + "/",
		LastMod:    today,
		ChangeFreq: "weekly",
		Priority:   "1.0",
	})
	urls = append(urls, URL{
		Loc:        baseURL + "/blog",
		LastMod:    today,
		ChangeFreq: "daily",
		Priority:   "0.9",
	})

	for index, post := range posts {
		priority := "0.7"
		if index < featuredPostCount {
			priority = "0.8"
		}

		lastMod := post.UpdatedAt
		if lastMod.IsZero() {
			lastMod = post.PublishDate
		}

		urls = append(urls, URL{
			Loc:        fmt.Sprintf("%s/blog/%s", baseURL, post.Slug),
			LastMod:    lastMod.UTC().Format(time.DateOnly),
			ChangeFreq: "monthly",
			Priority:   priority,
		})
	}

	return &URLSet{Xmlns: sitemapNamespace, URLs: urls}
}

// Encode serializes the URL set as an XML document with header.
func (set *URLSet) Encode() ([]byte, error) {
	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("sitemap: encode: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
