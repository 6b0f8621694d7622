package web

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"printshop/internal/cart"
	"printshop/internal/catalog"
	"printshop/internal/errx"
	"printshop/internal/logx"
	"printshop/internal/pricing"
)

type addRequest struct {
	Handle       string `json:"handle" form:"handle" binding:"required"`
	Quantity     int    `json:"quantity" form:"quantity"`
	TierQuantity int    `json:"tierQuantity" form:"tier_quantity"`
	PriceType    string `json:"priceType" form:"price_type"`
	Turnaround   string `json:"turnaround" form:"turnaround"`
	VariantID    string `json:"variantId" form:"variant_id"`
	Paper        string `json:"paper" form:"paper"`
}

type updateRequest struct {
	ID       string `json:"id" form:"id" binding:"required"`
	Quantity int    `json:"quantity" form:"quantity"`
}

type removeRequest struct {
	ID string `json:"id" form:"id" binding:"required"`
}

// productsFor loads the products referenced by ct. Products that no
// longer exist are left out so their items show as unpriced.
func (s *Server) productsFor(ctx context.Context, ct cart.Cart) (map[string]catalog.Product, error) {
	if len(ct.Items) == 0 {
		return map[string]catalog.Product{}, nil
	}
	handles := make([]string, 0, len(ct.Items))
	for _, it := range ct.Items {
		handles = append(handles, it.Handle)
	}
	return s.Catalog.ProductsByHandles(ctx, handles)
}

func (s *Server) respondCart(c *gin.Context, ct cart.Cart) {
	products, err := s.productsFor(c.Request.Context(), ct)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ct.Summary(products))
}

func (s *Server) persist(c *gin.Context, ct cart.Cart) bool {
	if err := saveCart(c, ct, s.cartLimit); err != nil {
		fail(c, fmt.Errorf("save cart: %w", err))
		return false
	}
	return true
}

func (s *Server) showCart(c *gin.Context) {
	s.respondCart(c, getCart(c))
}

func (s *Server) addToCart(c *gin.Context) {
	var req addRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	p, err := s.Catalog.ProductByHandle(c.Request.Context(), req.Handle)
	if err != nil {
		fail(c, err)
		return
	}

	ct := getCart(c)
	item, err := ct.Add(*p, req.Quantity, cart.Options{
		Quantity:   req.TierQuantity,
		PriceType:  pricing.PriceType(req.PriceType),
		Turnaround: cart.Turnaround(req.Turnaround),
		VariantID:  req.VariantID,
		Paper:      req.Paper,
	})
	if err != nil {
		fail(c, err)
		return
	}
	if !s.persist(c, ct) {
		return
	}
	logx.Debug().Str("handle", p.Handle).Str("item", item.ID).Int("quantity", item.Quantity).Msg("cart item added")
	s.respondCart(c, ct)
}

// updateCart sets an item's quantity; zero or less removes it.
func (s *Server) updateCart(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}
	ct := getCart(c)
	if req.Quantity <= 0 {
		if !ct.Remove(req.ID) {
			fail(c, fmt.Errorf("%w: %s", cart.ErrItemNotFound, req.ID))
			return
		}
	} else if err := ct.UpdateQuantity(req.ID, req.Quantity); err != nil {
		fail(c, err)
		return
	}
	if !s.persist(c, ct) {
		return
	}
	s.respondCart(c, ct)
}

func (s *Server) removeFromCart(c *gin.Context) {
	var req removeRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}
	ct := getCart(c)
	if !ct.Remove(req.ID) {
		fail(c, fmt.Errorf("%w: %s", cart.ErrItemNotFound, req.ID))
		return
	}
	if !s.persist(c, ct) {
		return
	}
	s.respondCart(c, ct)
}

func (s *Server) clearCart(c *gin.Context) {
	ct := getCart(c)
	ct.Clear()
	if !s.persist(c, ct) {
		return
	}
	s.respondCart(c, ct)
}

// checkout hands the cart to the storefront. The session cart is kept so
// the buyer can come back and change it.
func (s *Server) checkout(c *gin.Context) {
	ct := getCart(c)
	lines, err := ct.LineInputs()
	if err != nil {
		fail(c, err)
		return
	}
	created, err := s.Checkout.CreateCart(c.Request.Context(), lines)
	if err != nil {
		logx.Error().Err(err).Int("lines", len(lines)).Msg("checkout failed")
		fail(c, errx.New(err, http.StatusBadGateway, errx.CheckoutErrorMessage))
		return
	}
	logx.Info().Str("cart", created.ID).Int("lines", len(lines)).Msg("checkout created")
	c.JSON(http.StatusOK, gin.H{"cartId": created.ID, "checkoutUrl": created.CheckoutURL})
}
