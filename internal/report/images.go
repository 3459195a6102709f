package report

import "strings"

// ImageResolver turns the image references on a car record into a flat list
// of absolute URLs. BaseURL is the API base; a trailing "/api" segment is
// stripped before relative paths are joined onto it.
type ImageResolver struct {
	BaseURL string
}

// Resolve checks record.image_urls first and falls back to
// images[0].image_urls. Entries are normalized to bare strings, falsy ones
// dropped, relative paths made absolute. Order is preserved, nothing is
// de-duplicated, and empty input yields an empty output.
func (res ImageResolver) Resolve(record CarRecord) []string {
	refs := record.ImageURLs
	if len(refs) == 0 && len(record.Images) > 0 {
		refs = record.Images[0].ImageURLs
	}

	urls := make([]string, 0, len(refs))
	for _, ref := range refs {
		u := strings.TrimSpace(string(ref))
		if u == "" {
			continue
		}
		urls = append(urls, res.absolute(u))
	}
	return urls
}

func (res ImageResolver) absolute(u string) string {
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	base := strings.TrimSuffix(res.BaseURL, "/")
	base = strings.TrimSuffix(base, "/api")
	return base + "/" + strings.TrimPrefix(u, "/")
}
