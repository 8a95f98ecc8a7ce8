package api

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type bondSummary struct {
	Ticker    string    `json:"ticker"`
	IssueDate time.Time `json:"issue_date"`
	Maturity  time.Time `json:"maturity"`
	Coupon    float64   `json:"coupon"`
	Index     string    `json:"index,omitempty"`
	Flows     int       `json:"flows"`
}

func (s *Server) handleListBonds(c *gin.Context) {
	bonds, err := s.bonds.LoadAllBonds(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load bonds"})
		return
	}

	out := make([]bondSummary, 0, len(bonds))
	for _, b := range bonds {
		out = append(out, bondSummary{
			Ticker:    b.Ticker,
			IssueDate: b.IssueDate,
			Maturity:  b.Maturity,
			Coupon:    b.Coupon,
			Index:     b.Index,
			Flows:     len(b.Cashflow),
		})
	}
	c.JSON(http.StatusOK, gin.H{"bonds": out})
}

// handleBondYield computes the yield of a stored bond at a market price.
// Settlement defaults to T+offset business days from today; indexed bonds
// get their flows scaled by the adjustment coefficient before solving.
// Results are cached by ticker, price and settlement date.
func (s *Server) handleBondYield(c *gin.Context) {
	ticker := c.Param("ticker")

	price, err := strconv.ParseFloat(c.Query("price"), 64)
	if err != nil || price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter price must be a positive number"})
		return
	}

	bond, err := s.bonds.LoadBond(c.Request.Context(), ticker)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("bond %s not found", ticker)})
		return
	}

	var settlement time.Time
	if raw := c.Query("settlement"); raw != "" {
		settlement, err = time.Parse(dateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "settlement must be formatted as YYYY-MM-DD"})
			return
		}
	} else {
		offset := bond.Offset
		if offset == 0 {
			offset = s.settlementOffset
		}
		settlement = s.cal.SettlementDate(time.Now(), offset)
	}

	key := fmt.Sprintf("yield:%s:%.6f:%s", bond.Ticker, price, settlement.Format(dateLayout))
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			if y, err := strconv.ParseFloat(cached, 64); err == nil {
				c.JSON(http.StatusOK, gin.H{
					"ticker":     bond.Ticker,
					"price":      price,
					"settlement": settlement.Format(dateLayout),
					"yield":      y,
					"cached":     true,
				})
				return
			}
		}
	}

	if bond.Index != "" && s.index != nil {
		base, baseErr := s.index.Coefficient(bond.IssueDate)
		current, curErr := s.index.Coefficient(settlement)
		if baseErr == nil && curErr == nil && base > 0 {
			bond = bond.Scaled(current / base)
		} else {
			log.Printf("adjustment coefficient unavailable for %s, using nominal flows", bond.Ticker)
		}
	}

	yield, err := bond.YieldAtSettlement(price, settlement)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if s.cache != nil {
		if err := s.cache.Set(key, strconv.FormatFloat(yield, 'g', -1, 64)); err != nil {
			log.Printf("warning: failed to cache yield for %s: %v", bond.Ticker, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"ticker":     bond.Ticker,
		"price":      price,
		"settlement": settlement.Format(dateLayout),
		"yield":      yield,
	})
}
