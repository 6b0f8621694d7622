package storefront

const productFragment = `
  fragment ProductFragment on Product {
    id
    handle
    title
    description
    productType
    vendor
    tags
    availableForSale
    priceRange {
      minVariantPrice { amount currencyCode }
      maxVariantPrice { amount currencyCode }
    }
    compareAtPriceRange {
      minVariantPrice { amount currencyCode }
      maxVariantPrice { amount currencyCode }
    }
    images(first: 10) {
      edges { node { id url altText width height } }
    }
    variants(first: 50) {
      edges {
        node {
          id
          title
          availableForSale
          quantityAvailable
          priceV2 { amount currencyCode }
          compareAtPriceV2 { amount currencyCode }
          selectedOptions { name value }
          sku
          weight
          weightUnit
        }
      }
    }
    metafields(identifiers: [
      { namespace: "custom", key: "specifications" }
      { namespace: "custom", key: "pricing_tiers" }
      { namespace: "custom", key: "turnaround" }
      { namespace: "custom", key: "badge" }
      { namespace: "custom", key: "product_code" }
      { namespace: "custom", key: "discount_percentage" }
      { namespace: "custom", key: "features" }
      { namespace: "custom", key: "min_order_quantity" }
      { namespace: "custom", key: "paper_weights" }
      { namespace: "custom", key: "finishing_options" }
      { namespace: "custom", key: "price_increase_percentage" }
    ]) {
      namespace
      key
      value
      type
    }
  }
`

const collectionFragment = `
  fragment CollectionFragment on Collection {
    id
    handle
    title
    description
    image { id url altText width height }
  }
`

const productsQuery = productFragment + `
  query GetProducts($first: Int!, $after: String, $query: String) {
    products(first: $first, after: $after, query: $query) {
      edges {
        cursor
        node { ...ProductFragment }
      }
      pageInfo { hasNextPage hasPreviousPage endCursor }
    }
  }
`

// Collections only carry product handles; products come from productsQuery.
const collectionsQuery = collectionFragment + `
  query GetCollections($first: Int!, $after: String) {
    collections(first: $first, after: $after) {
      edges {
        cursor
        node {
          ...CollectionFragment
          products(first: 250) {
            edges { node { id handle } }
          }
        }
      }
      pageInfo { hasNextPage hasPreviousPage endCursor }
    }
  }
`

const cartCreateMutation = `
  mutation cartCreate($input: CartInput!) {
    cartCreate(input: $input) {
      cart {
        id
        checkoutUrl
        cost {
          totalAmount { amount currencyCode }
          subtotalAmount { amount currencyCode }
        }
      }
      userErrors { field message }
    }
  }
`
