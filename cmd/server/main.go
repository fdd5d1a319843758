package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/xiaer6289/Food-Ordering-System/docs"
	"github.com/xiaer6289/Food-Ordering-System/internal/cart"
	"github.com/xiaer6289/Food-Ordering-System/internal/catalog"
	"github.com/xiaer6289/Food-Ordering-System/internal/config"
	"github.com/xiaer6289/Food-Ordering-System/internal/httpx"
	"github.com/xiaer6289/Food-Ordering-System/internal/kitchen"
	"github.com/xiaer6289/Food-Ordering-System/internal/order"
	"github.com/xiaer6289/Food-Ordering-System/internal/payment"
	"github.com/xiaer6289/Food-Ordering-System/internal/seating"
)

// @title Food Ordering System API
// @version 1.0
// @description Seat-scoped restaurant ordering: carts, kitchen orders, hosted card checkout and refunds.
// @BasePath /
func main() {
	cfg := config.Load()

	pool, err := pgxpool.New(context.Background(), cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("[db] connect: %v", err)
	}
	defer pool.Close()

	foods := catalog.NewPGRepo(pool)
	seats := seating.NewPGRepo(pool)
	orders := order.NewPGRepo(pool)
	carts := cart.NewMemoryStore()

	var pub order.Publisher
	if kp, err := kitchen.Dial(cfg.RabbitURL); err != nil {
		log.Printf("[kitchen] rabbitmq unavailable, kitchen events disabled: %v", err)
	} else {
		defer kp.Close()
		pub = kp
	}

	orderSvc := order.NewService(orders, foods, carts, pub)
	gateway := payment.NewHTTPGateway(cfg.GatewayBaseURL, cfg.GatewaySecret)
	paySvc := payment.NewService(orders, carts, gateway, payment.NewPendingStore(), cfg.PublicBaseURL, cfg.Currency)

	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger())

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	r.GET("/menu", listMenuHandler(foods))

	r.GET("/seats", listSeatsHandler(seats))
	r.GET("/seats/:seatNo", getSeatHandler(seats))
	r.PUT("/seats/:seatNo/status", setSeatStatusHandler(seats))
	r.POST("/seats", addSeatHandler(seats))
	r.DELETE("/seats", removeSeatHandler(seats))

	r.GET("/carts/:seatNo", getCartHandler(carts))
	r.POST("/carts/:seatNo/items", addCartItemHandler(carts, foods))
	r.DELETE("/carts/:seatNo/items/:foodId", removeCartItemHandler(carts))

	r.POST("/orders", createOrderHandler(orderSvc))
	r.POST("/orders/send", sendOrderHandler(orderSvc))
	r.GET("/orders", listOrdersHandler(orders))
	r.GET("/orders/:id", getOrderHandler(orders))
	r.POST("/orders/:id/refund", refundOrderHandler(orderSvc))

	r.POST("/checkout", checkoutHandler(paySvc))
	r.GET("/payment/success", paymentSuccessHandler(paySvc))
	r.GET("/payment/cancel", paymentCancelHandler())

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	log.Printf("server listening on %s", cfg.HTTPAddr)
	log.Fatal(r.Run(cfg.HTTPAddr))
}
