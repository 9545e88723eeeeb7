package profile

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/atomic-arch/ghusers/internal/domain"
	"github.com/atomic-arch/ghusers/internal/logger"
	"github.com/atomic-arch/ghusers/pkg/networking"

	"github.com/PuerkitoBio/goquery"
)

// maxParsedHTMLBytes bounds how much of a fetched page is handed to the
// HTML parser. The transport still reads the full response.
const maxParsedHTMLBytes = 1 << 20

// Enricher fetches a user's public profile page and extracts metadata from OG tags.
// Its Service must be configured with an empty base URL so absolute page URLs pass through.
type Enricher struct {
	svc networking.Service
	log logger.Logger
}

// NewEnricher constructs an enricher over svc.
func NewEnricher(svc networking.Service, log logger.Logger) *Enricher {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Enricher{svc: svc, log: log}
}

// Enrich attaches profile metadata to detail. Failures are logged and the
// detail is returned unchanged.
func (e *Enricher) Enrich(ctx context.Context, detail domain.UserDetail) domain.UserDetail {
	if e == nil || e.svc == nil || detail.HTMLURL == "" {
		return detail
	}

	meta, err := e.fetchAndParse(ctx, detail.HTMLURL)
	if err != nil {
		e.log.WarnObj("profile metadata scrape failed", "profile_error", map[string]any{
			"login": detail.Login,
			"url":   detail.HTMLURL,
			"error": err.Error(),
		})
		return detail
	}
	detail.Profile = &meta
	return detail
}

func (e *Enricher) fetchAndParse(ctx context.Context, pageURL string) (domain.ProfileMeta, error) {
	body, err := networking.Raw(ctx, e.svc, networking.Target{
		Path:    pageURL,
		Method:  networking.MethodGet,
		Task:    networking.Plain(),
		Headers: map[string]string{"Accept": "text/html"},
	})
	if err != nil {
		return domain.ProfileMeta{}, fmt.Errorf("fetch profile page: %w", err)
	}
	if len(body) > maxParsedHTMLBytes {
		body = body[:maxParsedHTMLBytes]
	}

	meta, err := parseMeta(body)
	if err != nil {
		return domain.ProfileMeta{}, err
	}
	meta.ImageURL = resolveURL(meta.ImageURL, pageURL)
	return meta, nil
}

func parseMeta(body []byte) (domain.ProfileMeta, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return domain.ProfileMeta{}, fmt.Errorf("parse html: %w", err)
	}

	extract := func(sel string) string {
		if node := doc.Find(sel).First(); node.Length() > 0 {
			if val, ok := node.Attr("content"); ok {
				return strings.TrimSpace(val)
			}
		}
		return ""
	}

	return domain.ProfileMeta{
		Title: firstNonEmpty(
			extract(`meta[property="og:title"]`),
			strings.TrimSpace(doc.Find("title").First().Text()),
		),
		Description: firstNonEmpty(
			extract(`meta[property="og:description"]`),
			extract(`meta[name="description"]`),
		),
		ImageURL: extract(`meta[property="og:image"]`),
	}, nil
}

// resolveURL makes ref absolute against base; unparseable input is returned as-is.
func resolveURL(ref, base string) string {
	if ref == "" {
		return ""
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
