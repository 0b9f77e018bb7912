package shopify

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/jafarshop/storefront/internal/domain"
)

// ProductPageSize is the fixed number of products shown on the storefront
const ProductPageSize = 10

// SubscribeProductsQuery fetches the first page of products tagged Subscribe
var SubscribeProductsQuery = fmt.Sprintf(`
query getSubscribeProducts {
  products(first: %d, query: "tag:Subscribe") {
    edges {
      node {
        id
        title
        description
        images(first: 1) {
          edges {
            node {
              src
            }
          }
        }
      }
    }
  }
}
`, ProductPageSize)

// ParseProducts extracts product cards from a SubscribeProductsQuery response.
// Anything that does not have the expected shape yields no cards.
func ParseProducts(body []byte) []domain.Product {
	if !gjson.ValidBytes(body) {
		return []domain.Product{}
	}

	nodes := gjson.GetBytes(body, "data.products.edges.#.node")
	products := make([]domain.Product, 0, ProductPageSize)
	nodes.ForEach(func(_, node gjson.Result) bool {
		if !node.IsObject() {
			return true
		}
		products = append(products, domain.Product{
			ID:          node.Get("id").String(),
			Title:       node.Get("title").String(),
			Description: node.Get("description").String(),
			ImageSrc:    node.Get("images.edges.0.node.src").String(),
		})
		return len(products) < ProductPageSize
	})
	return products
}
