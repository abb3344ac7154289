package types

// Origin identifies which extraction pass produced a candidate.
type Origin string

const (
	OriginPricedListing Origin = "priced-listing"
	OriginLinkedListing Origin = "linked-listing"
	OriginProductPage   Origin = "product-page"
)

// Candidate is a provisionally extracted product, before deduplication.
type Candidate struct {
	Name        string
	Slug        string
	Price       *float64
	Image       string
	Description string
	Category    string

	// SourceURL is the page the candidate was extracted from.
	SourceURL string

	// ProductURL is the canonical product page, when known.
	ProductURL string

	// PageSlug is the last path segment of SourceURL.
	PageSlug string

	Origin Origin
}

// Product is a deduplicated catalog entry.
type Product struct {
	Name        string   `json:"name"                  bson:"name"`
	Slug        string   `json:"slug"                  bson:"slug"`
	Price       *float64 `json:"price"                 bson:"price"`
	Image       string   `json:"image"                 bson:"image"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
	Category    string   `json:"category"              bson:"category"`
	ProductURL  string   `json:"productUrl,omitempty"  bson:"productUrl,omitempty"`
}

// FieldCount returns how many optional fields carry a value.
func (p *Product) FieldCount() int {
	n := 0
	if p.Price != nil {
		n++
	}
	if p.Image != "" {
		n++
	}
	if p.Description != "" {
		n++
	}
	if p.ProductURL != "" {
		n++
	}
	return n
}

// Category is one top-level storefront category.
type Category struct {
	Name        string `json:"name"        bson:"name"`
	Slug        string `json:"slug"        bson:"slug"`
	Description string `json:"description" bson:"description"`
	URL         string `json:"url"         bson:"url"`
	Image       string `json:"image"       bson:"image"`
}

// Catalog is the full output of one run.
type Catalog struct {
	Products   []Product  `json:"products"`
	Categories []Category `json:"categories"`
}
