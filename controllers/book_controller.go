package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartlib/app"
	"smartlib/catalog"
	"smartlib/models"
)

type BookController struct{ *Srv }

func NewBookController(s *Srv) *BookController { return &BookController{Srv: s} }

// ListBooks serves the catalog with optional ?q= substring search and
// ?genre= filter, plus the distinct genre list for the filter menu.
func (bc *BookController) ListBooks(c *gin.Context) {
	books := bc.Circ.Books()
	filtered := catalog.Filter(books, c.Query("q"), c.Query("genre"))
	c.JSON(http.StatusOK, app.H{
		"books":  filtered,
		"total":  len(books),
		"genres": catalog.Genres(books),
	})
}

func (bc *BookController) GetBook(c *gin.Context) {
	book, err := bc.Circ.FindBook(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

type bookReq struct {
	Title       string `json:"title" binding:"required"`
	Author      string `json:"author" binding:"required"`
	Publisher   string `json:"publisher"`
	Genre       string `json:"genre"`
	Description string `json:"description"`
	CoverURL    string `json:"coverUrl"`
	PublishYear int    `json:"publishYear"`
	Stock       int    `json:"stock"`
}

func (bc *BookController) CreateBook(c *gin.Context) {
	var in bookReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	book, err := bc.Circ.AddBook(c.Request.Context(), models.Book{
		Title:       in.Title,
		Author:      in.Author,
		Publisher:   in.Publisher,
		Genre:       in.Genre,
		Description: in.Description,
		CoverURL:    in.CoverURL,
		PublishYear: in.PublishYear,
		Stock:       in.Stock,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	bc.logActivity(c, app.CurrentUser(c), models.ActionBookAdd,
		fmt.Sprintf("Buku %q ditambahkan", book.Title), map[string]any{"bookId": book.ID})
	c.JSON(http.StatusCreated, book)
}

func (bc *BookController) UpdateBook(c *gin.Context) {
	var in bookReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	book, err := bc.Circ.UpdateBook(c.Request.Context(), models.Book{
		ID:          c.Param("id"),
		Title:       in.Title,
		Author:      in.Author,
		Publisher:   in.Publisher,
		Genre:       in.Genre,
		Description: in.Description,
		CoverURL:    in.CoverURL,
		PublishYear: in.PublishYear,
		Stock:       in.Stock,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	bc.logActivity(c, app.CurrentUser(c), models.ActionBookEdit,
		fmt.Sprintf("Buku %q diperbarui", book.Title), map[string]any{"bookId": book.ID})
	c.JSON(http.StatusOK, book)
}

type stockReq struct {
	Stock *int `json:"stock" binding:"required"`
}

func (bc *BookController) SetStock(c *gin.Context) {
	var in stockReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	book, err := bc.Circ.SetStock(c.Request.Context(), c.Param("id"), *in.Stock)
	if err != nil {
		respondError(c, err)
		return
	}

	bc.logActivity(c, app.CurrentUser(c), models.ActionStockUpdate,
		fmt.Sprintf("Stok %q diubah menjadi %d", book.Title, book.Stock),
		map[string]any{"bookId": book.ID, "stock": book.Stock})
	c.JSON(http.StatusOK, book)
}

func (bc *BookController) DeleteBook(c *gin.Context) {
	id := c.Param("id")
	book, err := bc.Circ.FindBook(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := bc.Circ.DeleteBook(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	bc.logActivity(c, app.CurrentUser(c), models.ActionBookDelete,
		fmt.Sprintf("Buku %q dihapus", book.Title), map[string]any{"bookId": id})
	c.JSON(http.StatusOK, app.H{"ok": true})
}
