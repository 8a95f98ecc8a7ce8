// Package api exposes the finmath calculators over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"finmath"
	"finmath/calendar"
	"finmath/store"
)

// BondSource is the slice of the bond repository the API needs.
type BondSource interface {
	LoadAllBonds(ctx context.Context) ([]finmath.Bond, error)
	LoadBond(ctx context.Context, ticker string) (*finmath.Bond, error)
}

// Server holds the wired dependencies of the HTTP layer.
type Server struct {
	bonds  BondSource
	cache  store.Cache
	cal    *calendar.Calendar
	index  *store.IndexSeries
	solver finmath.SolverConfig

	// settlementOffset is the default T+n for bonds without their own offset.
	settlementOffset int
}

func NewServer(bonds BondSource, cache store.Cache, cal *calendar.Calendar, index *store.IndexSeries, solver finmath.SolverConfig, settlementOffset int) *Server {
	return &Server{
		bonds:            bonds,
		cache:            cache,
		cal:              cal,
		index:            index,
		solver:           solver,
		settlementOffset: settlementOffset,
	}
}

// Router builds the gin engine with every calculation route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.POST("/npv", s.handleNPV)
	r.POST("/irr", s.handleIRR)
	r.POST("/tvm/pv", s.handlePresentValue)
	r.POST("/tvm/fv", s.handleFutureValue)
	r.POST("/bond/price", s.handleBondPrice)
	r.POST("/bond/ytm", s.handleYieldToMaturity)
	r.POST("/stock/ddm", s.handleDividendDiscount)
	r.POST("/options/call", s.handleBlackScholesCall)
	r.POST("/risk/sharpe", s.handleSharpeRatio)
	r.POST("/risk/var", s.handleValueAtRisk)

	r.GET("/bonds", s.handleListBonds)
	r.GET("/bonds/:ticker/yield", s.handleBondYield)

	return r
}

// statusFor maps the calculation error taxonomy onto HTTP statuses:
// bad domain input is the client's fault, a failed root search is an
// unprocessable request, anything else is a server error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, finmath.ErrDidNotConverge),
		errors.Is(err, finmath.ErrZeroDerivative):
		return http.StatusUnprocessableEntity
	case errors.Is(err, finmath.ErrInvalidInput),
		errors.Is(err, finmath.ErrInvalidRate),
		errors.Is(err, finmath.ErrInvalidParameter):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
