package devserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/papertrade/tradedash/internal/domain"
)

var log = logrus.WithField("module", "devserver")

// tradeBody is the wire shape of POST /api/trade.
type tradeBody struct {
	Symbol   string          `json:"symbol"`
	Side     string          `json:"side"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// NewRouter builds the gin router exposing the four dashboard
// endpoints on top of the given ledger.
func NewRouter(book *Book) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api")
	api.GET("/positions", func(c *gin.Context) {
		c.JSON(http.StatusOK, book.Positions())
	})
	api.GET("/analytics/trades/today", func(c *gin.Context) {
		c.JSON(http.StatusOK, book.TradesToday())
	})
	api.GET("/analytics/daily", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"dailyAnalytics": book.DailyAnalytics()})
	})
	api.POST("/trade", func(c *gin.Context) {
		handleTrade(c, book)
	})

	return router
}

func handleTrade(c *gin.Context, book *Book) {
	var body tradeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "malformed trade request"})
		return
	}

	symbol, err := domain.ParseSymbol(body.Symbol)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	side, err := domain.ParseSide(body.Side)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	req := domain.TradeRequest{
		Symbol:   symbol,
		Side:     side,
		Quantity: body.Quantity,
		Price:    body.Price,
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	trade := book.Record(req)
	log.WithFields(logrus.Fields{
		"trade_id": trade.TradeID,
		"symbol":   trade.Symbol,
		"side":     trade.Side,
		"quantity": trade.Quantity,
		"price":    trade.Price,
	}).Info("trade recorded")
	c.JSON(http.StatusCreated, trade)
}
