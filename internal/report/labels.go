package report

import "github.com/morispolanco/recamazon/internal/pipeline"

// Labels holds the user-facing wording for one catalog.
type Labels struct {
	ItemsTitle               string
	DetailsTitle             string
	ReviewsTitle             string
	ReviewsSubheader         string
	RecommendationsTitle     string
	RecommendationsSubheader string

	NoItems           string
	NoDetails         string
	NoReviews         string
	NoRecommendations string
}

var (
	bookLabels = Labels{
		ItemsTitle:               "Related Books",
		DetailsTitle:             "Book Details",
		ReviewsTitle:             "Reviews",
		ReviewsSubheader:         "Customer Reviews",
		RecommendationsTitle:     "Recommendations",
		RecommendationsSubheader: "Book Recommendations",
		NoItems:                  "No related books found",
		NoDetails:                "No book details available",
		NoReviews:                "No reviews available",
		NoRecommendations:        pipeline.NoRecommendations,
	}
	productLabels = Labels{
		ItemsTitle:               "Related Products",
		DetailsTitle:             "Product Details",
		ReviewsTitle:             "Reviews",
		ReviewsSubheader:         "Customer Reviews",
		RecommendationsTitle:     "Recommendations",
		RecommendationsSubheader: "Product Recommendations",
		NoItems:                  "No related products found",
		NoDetails:                "No product details available",
		NoReviews:                "No reviews available",
		NoRecommendations:        pipeline.NoRecommendations,
	}
)

// LabelsFor returns the wording for catalog, falling back to books.
func LabelsFor(catalog string) Labels {
	if catalog == pipeline.CatalogProducts {
		return productLabels
	}
	return bookLabels
}
