package web

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"printshop/internal/cart"
	"printshop/internal/catalog"
	"printshop/internal/errx"
	"printshop/internal/pricing"
	"printshop/internal/sheet"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var errNoVariants = errx.New(nil, http.StatusUnprocessableEntity, "product has no variants")

// productView adds the derived prices listings show next to a product.
type productView struct {
	catalog.Product
	LowestOnlinePrice float64 `json:"lowestOnlinePrice"`
	LowestNormalPrice float64 `json:"lowestNormalPrice"`
	EffectiveDiscount int     `json:"effectiveDiscount"`
}

func viewOf(p catalog.Product) productView {
	return productView{
		Product:           p,
		LowestOnlinePrice: pricing.LowestPrice(p.Pricing, pricing.Online),
		LowestNormalPrice: pricing.LowestPrice(p.Pricing, pricing.Normal),
		EffectiveDiscount: p.EffectiveDiscount(),
	}
}

func viewsOf(products []catalog.Product) []productView {
	out := make([]productView, 0, len(products))
	for _, p := range products {
		out = append(out, viewOf(p))
	}
	return out
}

func (s *Server) listProducts(c *gin.Context) {
	sortBy, err := catalog.ParseSortBy(c.Query("sort"))
	if err != nil {
		badRequest(c, err)
		return
	}
	products, err := s.Catalog.Products(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	products = catalog.FilterByCategory(products, c.Query("category"))
	products = catalog.Search(products, c.Query("q"))
	products = catalog.Sort(products, sortBy)
	c.JSON(http.StatusOK, gin.H{"products": viewsOf(products), "count": len(products)})
}

func (s *Server) product(c *gin.Context) (*catalog.Product, bool) {
	p, err := s.Catalog.ProductByHandle(c.Request.Context(), c.Param("handle"))
	if err != nil {
		fail(c, err)
		return nil, false
	}
	return p, true
}

func (s *Server) getProduct(c *gin.Context) {
	p, ok := s.product(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, viewOf(*p))
}

type quoteView struct {
	pricing.Quote
	UnitPrice float64 `json:"unitPrice"`
	Savings   int     `json:"savings"`
}

func (s *Server) quote(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("quantity"))
	qty, err := strconv.Atoi(raw)
	if err != nil {
		fail(c, fmt.Errorf("%w: %q", pricing.ErrInvalidQuantity, raw))
		return
	}
	typ, err := pricing.ParsePriceType(c.Query("type"))
	if err != nil {
		fail(c, err)
		return
	}
	p, ok := s.product(c)
	if !ok {
		return
	}
	q, err := pricing.QuoteFor(p.Pricing, qty, typ)
	if err != nil {
		fail(c, err)
		return
	}

	view := quoteView{Quote: q, UnitPrice: q.PerUnit()}
	online, errOnline := pricing.Resolve(p.Pricing, q.Quantity, pricing.Online)
	normal, errNormal := pricing.Resolve(p.Pricing, q.Quantity, pricing.Normal)
	if errOnline == nil && errNormal == nil {
		view.Savings = pricing.Savings(online.Price, normal.Price)
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) priceSheet(c *gin.Context) {
	p, ok := s.product(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := sheet.WritePriceSheet(&buf, *p); err != nil {
		fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-prices.xlsx"`, p.Handle))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (s *Server) orderLink(c *gin.Context) {
	p, ok := s.product(c)
	if !ok {
		return
	}
	if len(p.Variants) == 0 {
		fail(c, errNoVariants)
		return
	}
	v := p.Variants[0]
	if id := c.Query("variant"); id != "" {
		var found bool
		if v, found = p.Variant(id); !found {
			fail(c, fmt.Errorf("%w: %s", cart.ErrUnknownVariant, id))
			return
		}
	}

	msg := catalog.OrderMessage(*p, v)
	link, err := catalog.OrderLink(s.ContactNumber, msg)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": link, "message": msg})
}

// listCategories prefers collections and falls back to product categories
// when none are synced.
func (s *Server) listCategories(c *gin.Context) {
	ctx := c.Request.Context()
	cols, err := s.Catalog.Collections(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	if len(cols) > 0 {
		c.JSON(http.StatusOK, catalog.CategoriesFromCollections(cols))
		return
	}
	products, err := s.Catalog.Products(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, catalog.Categories(products))
}

func (s *Server) listCollections(c *gin.Context) {
	cols, err := s.Catalog.Collections(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cols)
}

func (s *Server) getCollection(c *gin.Context) {
	col, err := s.Catalog.CollectionByHandle(c.Request.Context(), c.Param("handle"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":           col.ID,
		"handle":       col.Handle,
		"title":        col.Title,
		"description":  col.Description,
		"image":        col.Image,
		"productCount": col.ProductCount,
		"products":     viewsOf(col.Products),
	})
}
