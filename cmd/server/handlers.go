package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xiaer6289/Food-Ordering-System/internal/cart"
	"github.com/xiaer6289/Food-Ordering-System/internal/catalog"
	"github.com/xiaer6289/Food-Ordering-System/internal/order"
	"github.com/xiaer6289/Food-Ordering-System/internal/payment"
	"github.com/xiaer6289/Food-Ordering-System/internal/seating"
)

func seatNoParam(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil || n < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid seat number"})
		return 0, false
	}
	return n, true
}

// @Summary List the menu
// @Produce json
// @Param q query string false "search term"
// @Success 200 {array} catalog.Food
// @Router /menu [get]
func listMenuHandler(foods catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		out, err := foods.List(c.Request.Context(), catalog.Query{
			Q: c.Query("q"), Limit: limit, Offset: offset,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if out == nil {
			out = []catalog.Food{}
		}
		c.JSON(http.StatusOK, out)
	}
}

func listSeatsHandler(seats seating.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := seats.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if out == nil {
			out = []seating.Seat{}
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary Add a seat at the smallest free number
// @Produce json
// @Success 201 {object} seating.Seat
// @Router /seats [post]
func addSeatHandler(seats seating.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := seats.Add(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, s)
	}
}

func getSeatHandler(seats seating.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		seatNo, ok := seatNoParam(c, "seatNo")
		if !ok {
			return
		}
		s, err := seats.GetByNo(c.Request.Context(), seatNo)
		if err != nil {
			if errors.Is(err, seating.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "seat not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, s)
	}
}

type seatStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// @Summary Manually set a seat's status
// @Description Normally seats transition with the order lifecycle; this is the override for walk-ins and cleanup.
// @Accept json
// @Produce json
// @Param seatNo path int true "seat number"
// @Router /seats/{seatNo}/status [put]
func setSeatStatusHandler(seats seating.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		seatNo, ok := seatNoParam(c, "seatNo")
		if !ok {
			return
		}
		var req seatStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
			return
		}
		if req.Status != seating.StatusAvailable && req.Status != seating.StatusOccupied {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid seat status"})
			return
		}
		if err := seats.UpdateStatus(c.Request.Context(), seatNo, req.Status); err != nil {
			if errors.Is(err, seating.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "seat not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"seat_no": seatNo, "status": req.Status})
	}
}

func removeSeatHandler(seats seating.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		seatNo, err := seats.RemoveMax(c.Request.Context())
		if err != nil {
			if errors.Is(err, seating.ErrNoSeats) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"removed": seatNo})
	}
}

func getCartHandler(carts cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		seatNo, ok := seatNoParam(c, "seatNo")
		if !ok {
			return
		}
		c.JSON(http.StatusOK, carts.Get(seatNo))
	}
}

type addCartItemRequest struct {
	FoodID      string `json:"food_id" binding:"required"`
	Quantity    int    `json:"quantity"`
	ExtraDetail string `json:"extra_detail"`
}

// @Summary Add a food to a seat's cart
// @Description Repeated adds for the same food stack the quantity; a non-positive quantity removes the entry.
// @Accept json
// @Produce json
// @Param seatNo path int true "seat number"
// @Router /carts/{seatNo}/items [post]
func addCartItemHandler(carts cart.Store, foods catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		seatNo, ok := seatNoParam(c, "seatNo")
		if !ok {
			return
		}
		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
			return
		}
		if req.Quantity > 0 {
			if _, err := foods.GetByID(c.Request.Context(), req.FoodID); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food id"})
				return
			}
		}
		carts.AddOrUpdate(seatNo, req.FoodID, req.Quantity, req.ExtraDetail)
		c.JSON(http.StatusOK, carts.Get(seatNo))
	}
}

func removeCartItemHandler(carts cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		seatNo, ok := seatNoParam(c, "seatNo")
		if !ok {
			return
		}
		carts.Remove(seatNo, c.Param("foodId"))
		c.JSON(http.StatusOK, carts.Get(seatNo))
	}
}

// @Summary Materialize a seat's cart into a pending order
// @Accept json
// @Produce json
// @Param request body order.CreateOrderRequest true "order request"
// @Success 201 {object} order.OrderDetail
// @Router /orders [post]
func createOrderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
			return
		}
		o, items, err := svc.CreateOrder(c.Request.Context(), req.SeatNo, req.StaffID, req.AdminID)
		if err != nil {
			orderErrJSON(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"order": o, "items": items})
	}
}

// @Summary Assemble the cart and send the order to the kitchen
// @Accept json
// @Produce json
// @Param request body order.CreateOrderRequest true "order request"
// @Success 201 {object} order.OrderDetail
// @Router /orders/send [post]
func sendOrderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
			return
		}
		o, items, err := svc.SendToKitchen(c.Request.Context(), req.SeatNo, req.StaffID, req.AdminID)
		if err != nil {
			orderErrJSON(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"order": o, "items": items})
	}
}

func getOrderHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, items, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			orderErrJSON(c, err)
			return
		}
		resp := gin.H{"order": o, "items": items}
		if p, err := repo.GetPayment(c.Request.Context(), o.ID); err == nil {
			resp["payment"] = p
		}
		c.JSON(http.StatusOK, resp)
	}
}

func listOrdersHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := order.Query{Status: c.Query("status")}
		if v := c.Query("seat_no"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid seat number"})
				return
			}
			q.SeatNo = &n
		}
		q.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
		q.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

		out, err := repo.List(c.Request.Context(), q)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if out == nil {
			out = []order.OrderDetail{}
		}
		c.JSON(http.StatusOK, gin.H{"orders": out})
	}
}

// @Summary Refund selected line items of a paid order
// @Accept json
// @Produce json
// @Param id path string true "order id"
// @Param request body order.RefundRequest true "items to refund"
// @Router /orders/{id}/refund [post]
func refundOrderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.RefundRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
			return
		}
		o, items, err := svc.Refund(c.Request.Context(), c.Param("id"), req.ItemIDs)
		if err != nil {
			orderErrJSON(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": o, "items": items})
	}
}

type checkoutRequest struct {
	SeatNo int `json:"seat_no" binding:"required"`
}

// @Summary Open a hosted checkout session for a seat's unpaid order
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /checkout [post]
func checkoutHandler(svc *payment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
			return
		}
		url, err := svc.CreateCheckoutSession(c.Request.Context(), req.SeatNo)
		if err != nil {
			if errors.Is(err, payment.ErrNoPendingOrder) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "no pending order to pay"})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"redirect_url": url})
	}
}

// @Summary Confirm a payment on return from the gateway
// @Produce json
// @Param seatNo query int true "seat number"
// @Param session_id query string true "gateway session id"
// @Router /payment/success [get]
func paymentSuccessHandler(svc *payment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		seatNo, err := strconv.Atoi(c.Query("seatNo"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid seat number"})
			return
		}
		sessionID := c.Query("session_id")
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
			return
		}

		conf, err := svc.Confirm(c.Request.Context(), seatNo, sessionID)
		if err != nil {
			switch {
			case errors.Is(err, payment.ErrPaymentNotCompleted):
				// cancellation outcome, nothing was mutated
				c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
			case errors.Is(err, order.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			default:
				var rerr *payment.ReconciliationError
				if errors.As(err, &rerr) {
					c.JSON(http.StatusInternalServerError, gin.H{
						"error":          "payment recorded at gateway but not locally, retry confirmation",
						"session_id":     rerr.SessionID,
						"transaction_id": rerr.TransactionID,
					})
					return
				}
				c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(http.StatusOK, conf)
	}
}

func paymentCancelHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
	}
}

func orderErrJSON(c *gin.Context, err error) {
	switch {
	case errors.Is(err, order.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
	case errors.Is(err, order.ErrNoItemsSelected):
		c.JSON(http.StatusBadRequest, gin.H{"error": "please select items to refund"})
	case errors.Is(err, order.ErrActorRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, order.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
