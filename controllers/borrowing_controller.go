package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"smartlib/app"
	"smartlib/circulation"
	"smartlib/models"
)

type BorrowingController struct{ *Srv }

func NewBorrowingController(s *Srv) *BorrowingController { return &BorrowingController{Srv: s} }

// borrowingView decorates a borrowing with its derived display status,
// so an active loan past due shows as overdue without ever storing it.
type borrowingView struct {
	models.Borrowing
	DisplayStatus string `json:"displayStatus"`
}

func viewOf(b models.Borrowing, now time.Time) borrowingView {
	return borrowingView{Borrowing: b, DisplayStatus: circulation.DisplayStatus(&b, now)}
}

// Checkout converts the member's cart into a pending borrowing and
// hands back the barcode to show at the desk.
func (bc *BorrowingController) Checkout(c *gin.Context) {
	u := app.CurrentUser(c)
	sid := app.SessionID(c)

	items, err := bc.Carts.Get(c.Request.Context(), sid)
	if err != nil {
		respondError(c, err)
		return
	}

	b, err := bc.Circ.Checkout(c.Request.Context(), items, u, time.Now().UTC())
	if err != nil {
		respondError(c, err)
		return
	}
	_ = bc.Carts.Clear(c.Request.Context(), sid)

	bc.logActivity(c, u, models.ActionBorrowRequest,
		fmt.Sprintf("%s mengajukan peminjaman %d buku", u.Name, b.TotalQuantity()),
		map[string]any{"borrowingId": b.ID, "barcode": b.Barcode})
	c.JSON(http.StatusCreated, viewOf(b, time.Now().UTC()))
}

// ListMine returns the member's own borrowings, newest first.
func (bc *BorrowingController) ListMine(c *gin.Context) {
	u := app.CurrentUser(c)
	now := time.Now().UTC()

	borrowings := bc.Circ.BorrowingsForUser(u.ID)
	out := make([]borrowingView, 0, len(borrowings))
	for i := len(borrowings) - 1; i >= 0; i-- {
		out = append(out, viewOf(borrowings[i], now))
	}
	c.JSON(http.StatusOK, app.H{"borrowings": out})
}

// ListAll is the staff view, optionally filtered by display status
// (?status=pending|active|overdue|returning|returned).
func (bc *BorrowingController) ListAll(c *gin.Context) {
	status := c.Query("status")
	now := time.Now().UTC()

	borrowings := bc.Circ.Borrowings()
	out := make([]borrowingView, 0, len(borrowings))
	for i := len(borrowings) - 1; i >= 0; i-- {
		v := viewOf(borrowings[i], now)
		if status != "" && v.DisplayStatus != status {
			continue
		}
		out = append(out, v)
	}
	c.JSON(http.StatusOK, app.H{"borrowings": out})
}

type scanReq struct {
	Barcode string `json:"barcode" binding:"required"`
}

// Scan resolves a scanned barcode to its borrowing so the staff screen
// can show what is about to be confirmed.
func (bc *BorrowingController) Scan(c *gin.Context) {
	var in scanReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	b, err := bc.Circ.FindByBarcode(in.Barcode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(b, time.Now().UTC()))
}

// Confirm activates a pending borrowing and pulls the copies from
// stock. Firing it twice is safe: the second call gets 409.
func (bc *BorrowingController) Confirm(c *gin.Context) {
	b, err := bc.Circ.ConfirmBorrowing(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	bc.logActivity(c, app.CurrentUser(c), models.ActionBorrowConfirm,
		fmt.Sprintf("Peminjaman %s dikonfirmasi (%d buku)", b.Barcode, b.TotalQuantity()),
		map[string]any{"borrowingId": b.ID})
	c.JSON(http.StatusOK, viewOf(b, time.Now().UTC()))
}

// RequestReturn moves the member's borrowing to returning and issues
// the RET barcode. Members can only return their own borrowings.
func (bc *BorrowingController) RequestReturn(c *gin.Context) {
	u := app.CurrentUser(c)
	id := c.Param("id")

	existing, err := bc.Circ.FindBorrowing(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing.UserID != u.ID && !u.IsAdmin() {
		c.JSON(http.StatusForbidden, app.H{"error": "forbidden"})
		return
	}

	// The return barcode carries the borrowing owner's membership number,
	// not the caller's.
	owner := u
	if existing.UserID != u.ID {
		owner, err = bc.Users.FindUserByID(c.Request.Context(), existing.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
	}

	b, err := bc.Circ.RequestReturn(c.Request.Context(), id, owner, time.Now().UTC())
	if err != nil {
		respondError(c, err)
		return
	}

	bc.logActivity(c, u, models.ActionReturnRequest,
		fmt.Sprintf("%s mengajukan pengembalian %s", owner.Name, b.ReturnBarcode),
		map[string]any{"borrowingId": b.ID})
	c.JSON(http.StatusOK, viewOf(b, time.Now().UTC()))
}

// ConfirmReturn completes a returning borrowing, restores stock, and
// reports the late fee that was booked.
func (bc *BorrowingController) ConfirmReturn(c *gin.Context) {
	b, err := bc.Circ.ConfirmReturn(c.Request.Context(), c.Param("id"), time.Now().UTC())
	if err != nil {
		respondError(c, err)
		return
	}

	desc := fmt.Sprintf("Pengembalian %s dikonfirmasi", b.ReturnBarcode)
	if b.LateFee > 0 {
		desc = fmt.Sprintf("%s, denda Rp %d (%d hari terlambat)", desc, b.LateFee, b.DaysLate)
	}
	bc.logActivity(c, app.CurrentUser(c), models.ActionReturnConfirm, desc,
		map[string]any{"borrowingId": b.ID, "lateFee": b.LateFee, "daysLate": b.DaysLate})
	c.JSON(http.StatusOK, viewOf(b, time.Now().UTC()))
}
