package supermarket

import "time"

// Supermarket is a shared reference entity: ingredients quote prices
// against it and shopping lists group items by it. Not user-scoped.
type Supermarket struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Location        string       `json:"location,omitempty"`
	LogoURL         string       `json:"logoUrl,omitempty"`
	WebsiteURL      string       `json:"websiteUrl,omitempty"`
	ScrapingEnabled bool         `json:"scrapingEnabled"`
	ScrapingURLs    ScrapingURLs `json:"scrapingUrls,omitempty"`
	LastScraped     *time.Time   `json:"lastScraped,omitempty"`
	Active          bool         `json:"active"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

type ScrapingURLs struct {
	BaseURL        string `json:"baseUrl,omitempty"`
	SearchEndpoint string `json:"searchEndpoint,omitempty"`
}
