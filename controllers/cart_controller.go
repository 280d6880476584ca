package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartlib/app"
	"smartlib/cart"
)

type CartController struct{ *Srv }

func NewCartController(s *Srv) *CartController { return &CartController{Srv: s} }

// cartLine joins a cart row with live book data so the client can
// render titles and check quantities against current stock.
type cartLine struct {
	cart.Item
	BookTitle string `json:"bookTitle"`
	Stock     int    `json:"stock"`
}

func (cc *CartController) view(items []cart.Item) []cartLine {
	out := make([]cartLine, 0, len(items))
	for _, it := range items {
		line := cartLine{Item: it}
		if book, err := cc.Circ.FindBook(it.BookID); err == nil {
			line.BookTitle = book.Title
			line.Stock = book.Stock
		}
		out = append(out, line)
	}
	return out
}

func (cc *CartController) GetCart(c *gin.Context) {
	items, err := cc.Carts.Get(c.Request.Context(), app.SessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"items": cc.view(items), "totalQuantity": cart.TotalQuantity(items)})
}

type addCartReq struct {
	BookID string `json:"bookId" binding:"required"`
}

// AddToCart upserts; adding a book already in the cart reports 409
// instead of a second line, so a duplicate bookId never exists.
func (cc *CartController) AddToCart(c *gin.Context) {
	var in addCartReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if _, err := cc.Circ.FindBook(in.BookID); err != nil {
		respondError(c, err)
		return
	}

	sid := app.SessionID(c)
	items, err := cc.Carts.Get(c.Request.Context(), sid)
	if err != nil {
		respondError(c, err)
		return
	}
	items, added := cart.Add(items, in.BookID)
	if !added {
		c.JSON(http.StatusConflict, app.H{"error": "buku sudah ada di keranjang"})
		return
	}
	if err := cc.Carts.Put(c.Request.Context(), sid, items); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"items": cc.view(items)})
}

type quantityReq struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

func (cc *CartController) UpdateQuantity(c *gin.Context) {
	var in quantityReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	sid := app.SessionID(c)
	items, err := cc.Carts.Get(c.Request.Context(), sid)
	if err != nil {
		respondError(c, err)
		return
	}
	items = cart.SetQuantity(items, c.Param("bookId"), in.Quantity)
	if err := cc.Carts.Put(c.Request.Context(), sid, items); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"items": cc.view(items)})
}

func (cc *CartController) RemoveFromCart(c *gin.Context) {
	sid := app.SessionID(c)
	items, err := cc.Carts.Get(c.Request.Context(), sid)
	if err != nil {
		respondError(c, err)
		return
	}
	items = cart.Remove(items, c.Param("bookId"))
	if err := cc.Carts.Put(c.Request.Context(), sid, items); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"items": cc.view(items)})
}
