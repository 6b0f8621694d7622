// Package storefront is a thin client for the Shopify Storefront GraphQL
// API: catalog reads and cart creation for checkout.
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"printshop/internal/config"
	"printshop/internal/errx"
	"printshop/internal/logx"
)

var ErrNoData = errors.New("no data returned from storefront")

type Client struct {
	endpoint string
	token    string
	pageSize int
	http     *http.Client
}

func New(cfg config.Shopify) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return NewWithEndpoint(
		fmt.Sprintf("https://%s/api/%s/graphql.json", cfg.Domain, cfg.APIVersion),
		cfg.Token,
		cfg.PageSize,
		&http.Client{Timeout: timeout},
	)
}

// NewWithEndpoint builds a client against an explicit GraphQL URL.
func NewWithEndpoint(endpoint, token string, pageSize int, hc *http.Client) *Client {
	if pageSize <= 0 || pageSize > 250 {
		pageSize = 100
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{endpoint: endpoint, token: token, pageSize: pageSize, http: hc}
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// do posts one GraphQL operation and decodes data into out.
func (c *Client) do(ctx context.Context, query string, vars map[string]any, out any) error {
	body, err := json.Marshal(gqlRequest{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Storefront-Access-Token", c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return errx.WrapUpstream(err, "")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errx.WrapUpstream(fmt.Errorf("http status %d", resp.StatusCode), "")
	}

	var gr gqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return errx.WrapUpstream(fmt.Errorf("decode response: %w", err), "")
	}
	if len(gr.Errors) > 0 {
		msgs := make([]string, 0, len(gr.Errors))
		for _, e := range gr.Errors {
			msgs = append(msgs, e.Message)
		}
		logx.Error().Strs("errors", msgs).Msg("storefront graphql errors")
		return errx.WrapUpstream(errors.New(strings.Join(msgs, ", ")), "")
	}
	if len(gr.Data) == 0 || string(gr.Data) == "null" {
		return errx.WrapUpstream(ErrNoData, "")
	}
	if err := json.Unmarshal(gr.Data, out); err != nil {
		return errx.WrapUpstream(fmt.Errorf("decode data: %w", err), "")
	}
	return nil
}

// Products fetches every product page. query is an optional storefront
// search expression.
func (c *Client) Products(ctx context.Context, query string) ([]Product, error) {
	var (
		out   []Product
		after *string
	)
	for {
		vars := map[string]any{"first": c.pageSize, "after": after}
		if query != "" {
			vars["query"] = query
		}
		var data struct {
			Products ProductConnection `json:"products"`
		}
		if err := c.do(ctx, productsQuery, vars, &data); err != nil {
			return nil, fmt.Errorf("fetch products: %w", err)
		}
		for _, e := range data.Products.Edges {
			out = append(out, e.Node)
		}
		pi := data.Products.PageInfo
		if !pi.HasNextPage || pi.EndCursor == "" {
			break
		}
		cursor := pi.EndCursor
		after = &cursor
		logx.Debug().Int("fetched", len(out)).Msg("fetching next product page")
	}
	return out, nil
}

// Collections fetches every collection with the handles of its products.
func (c *Client) Collections(ctx context.Context) ([]Collection, error) {
	var (
		out   []Collection
		after *string
	)
	for {
		var data struct {
			Collections struct {
				Edges []struct {
					Node Collection `json:"node"`
				} `json:"edges"`
				PageInfo PageInfo `json:"pageInfo"`
			} `json:"collections"`
		}
		vars := map[string]any{"first": c.pageSize, "after": after}
		if err := c.do(ctx, collectionsQuery, vars, &data); err != nil {
			return nil, fmt.Errorf("fetch collections: %w", err)
		}
		for _, e := range data.Collections.Edges {
			out = append(out, e.Node)
		}
		pi := data.Collections.PageInfo
		if !pi.HasNextPage || pi.EndCursor == "" {
			break
		}
		cursor := pi.EndCursor
		after = &cursor
	}
	return out, nil
}

// CreateCart creates an upstream cart holding lines and returns it; the
// buyer completes payment at Cart.CheckoutURL.
func (c *Client) CreateCart(ctx context.Context, lines []CartLineInput) (*Cart, error) {
	var data struct {
		CartCreate struct {
			Cart       *Cart       `json:"cart"`
			UserErrors []UserError `json:"userErrors"`
		} `json:"cartCreate"`
	}
	vars := map[string]any{"input": map[string]any{"lines": lines}}
	if err := c.do(ctx, cartCreateMutation, vars, &data); err != nil {
		return nil, errx.WrapUpstream(err, errx.CheckoutErrorMessage)
	}
	if err := userErrors(data.CartCreate.UserErrors); err != nil {
		return nil, errx.WrapUpstream(fmt.Errorf("cart creation failed: %w", err), errx.CheckoutErrorMessage)
	}
	if data.CartCreate.Cart == nil {
		return nil, errx.WrapUpstream(ErrNoData, errx.CheckoutErrorMessage)
	}
	return data.CartCreate.Cart, nil
}

func userErrors(errs []UserError) error {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return errors.New(strings.Join(msgs, ", "))
}
