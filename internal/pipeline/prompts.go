package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/morispolanco/recamazon/internal/services"
)

// Catalog names select prompt wording.
const (
	CatalogBooks    = "books"
	CatalogProducts = "products"
)

const (
	bookDiscoverPrompt  = "Search Amazon for books related to '%s' and return a JSON list of up to 10 book URLs in this format: ['url1', 'url2', ...]. Only include books, no other product types."
	bookDetailPrompt    = "Get detailed information for these Amazon book URLs including price, description, author, publisher, and ISBN:\n    %s\n    Support up to 50 book URLs and return as JSON. Only process URLs that correspond to books."
	bookReviewPrompt    = "Retrieve detailed customer reviews and ratings for these Amazon book URLs:\n    %s\n    Support up to 50 book URLs and return as JSON with review text and rating. Only process URLs that correspond to books."
	bookRecommendPrompt = "Based on this book data:\n    %s\n    Generate recommendations for book title, features (like genre, length, or target audience), and price."

	productDiscoverPrompt  = "Search Amazon for products related to '%s' and return a JSON list of up to 10 product URLs in this format: ['url1', 'url2', ...]."
	productDetailPrompt    = "Get detailed information for these Amazon product URLs including price, description, brand, and specifications:\n    %s\n    Support up to 50 product URLs and return as JSON."
	productReviewPrompt    = "Retrieve detailed customer reviews and ratings for these Amazon product URLs:\n    %s\n    Support up to 50 product URLs and return as JSON with review text and rating."
	productRecommendPrompt = "Based on this product data:\n    %s\n    Generate recommendations for product title, features, and price."
)

// Prompts holds the four stage templates for one catalog.
type Prompts struct {
	Catalog   string
	discover  string
	detail    string
	review    string
	recommend string
}

// PromptsFor returns the templates for catalog.
func PromptsFor(catalog string) (Prompts, error) {
	switch strings.ToLower(strings.TrimSpace(catalog)) {
	case "", CatalogBooks:
		return Prompts{
			Catalog:   CatalogBooks,
			discover:  bookDiscoverPrompt,
			detail:    bookDetailPrompt,
			review:    bookReviewPrompt,
			recommend: bookRecommendPrompt,
		}, nil
	case CatalogProducts:
		return Prompts{
			Catalog:   CatalogProducts,
			discover:  productDiscoverPrompt,
			detail:    productDetailPrompt,
			review:    productReviewPrompt,
			recommend: productRecommendPrompt,
		}, nil
	default:
		return Prompts{}, services.Wrap(services.ErrValidation, "pipeline", "prompts", fmt.Sprintf("unknown catalog %q", catalog), nil)
	}
}

// Discover embeds the query.
func (p Prompts) Discover(query string) string {
	return fmt.Sprintf(p.discover, query)
}

// Detail embeds the URL set as a JSON array.
func (p Prompts) Detail(urls []string) string {
	return fmt.Sprintf(p.detail, encodeJSON(urls))
}

// Review embeds the URL set as a JSON array.
func (p Prompts) Review(urls []string) string {
	return fmt.Sprintf(p.review, encodeJSON(urls))
}

// Recommend embeds the detail records as a JSON array.
func (p Prompts) Recommend(details any) string {
	return fmt.Sprintf(p.recommend, encodeJSON(details))
}

func encodeJSON(value any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return "[]"
	}
	return strings.TrimSpace(buf.String())
}
