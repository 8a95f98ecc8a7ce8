package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finmath"
)

type npvRequest struct {
	Rate      float64   `json:"rate"`
	CashFlows []float64 `json:"cash_flows"`
}

func (s *Server) handleNPV(c *gin.Context) {
	var req npvRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	npv, err := finmath.NetPresentValue(req.Rate, req.CashFlows)
	if err != nil {
		abortWithError(c, err)
		return
	}
	deriv, err := finmath.NetPresentValueDerivative(req.Rate, req.CashFlows)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"npv": npv, "derivative": deriv})
}

type irrRequest struct {
	CashFlows     []float64 `json:"cash_flows"`
	InitialGuess  *float64  `json:"initial_guess"`
	Tolerance     *float64  `json:"tolerance"`
	MaxIterations *int      `json:"max_iterations"`
}

func (s *Server) handleIRR(c *gin.Context) {
	var req irrRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cfg := s.solver
	if req.InitialGuess != nil {
		cfg.InitialGuess = *req.InitialGuess
	}
	if req.Tolerance != nil {
		cfg.Tolerance = *req.Tolerance
	}
	if req.MaxIterations != nil {
		cfg.MaxIterations = *req.MaxIterations
	}

	irr, err := finmath.InternalRateOfReturnWithConfig(req.CashFlows, cfg)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"irr": irr})
}

type tvmRequest struct {
	Rate    float64 `json:"rate"`
	Amount  float64 `json:"amount"`
	Periods float64 `json:"periods"`
}

func (s *Server) handlePresentValue(c *gin.Context) {
	var req tvmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	pv, err := finmath.PresentValue(req.Rate, req.Amount, req.Periods)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"present_value": pv})
}

func (s *Server) handleFutureValue(c *gin.Context) {
	var req tvmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	fv, err := finmath.FutureValue(req.Rate, req.Amount, req.Periods)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"future_value": fv})
}

type bondPriceRequest struct {
	FaceValue    float64 `json:"face_value"`
	CouponRate   float64 `json:"coupon_rate"`
	Periods      int     `json:"periods"`
	DiscountRate float64 `json:"discount_rate"`
}

func (s *Server) handleBondPrice(c *gin.Context) {
	var req bondPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	price, err := finmath.BondPrice(req.FaceValue, req.CouponRate, req.Periods, req.DiscountRate)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"price": price})
}

type ytmRequest struct {
	FaceValue  float64 `json:"face_value"`
	CouponRate float64 `json:"coupon_rate"`
	Periods    int     `json:"periods"`
	Price      float64 `json:"price"`
}

func (s *Server) handleYieldToMaturity(c *gin.Context) {
	var req ytmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ytm, err := finmath.YieldToMaturity(req.FaceValue, req.CouponRate, req.Periods, req.Price)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ytm": ytm})
}

type ddmRequest struct {
	Dividend     float64 `json:"dividend"`
	GrowthRate   float64 `json:"growth_rate"`
	DiscountRate float64 `json:"discount_rate"`
}

func (s *Server) handleDividendDiscount(c *gin.Context) {
	var req ddmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	price, err := finmath.DividendDiscountModel(req.Dividend, req.GrowthRate, req.DiscountRate)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"price": price})
}

type callRequest struct {
	Spot     float64 `json:"spot"`
	Strike   float64 `json:"strike"`
	Maturity float64 `json:"maturity"`
	Rate     float64 `json:"rate"`
	Sigma    float64 `json:"sigma"`
}

func (s *Server) handleBlackScholesCall(c *gin.Context) {
	var req callRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	price, err := finmath.BlackScholesCall(req.Spot, req.Strike, req.Maturity, req.Rate, req.Sigma)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"price": price})
}

type sharpeRequest struct {
	Returns      []float64 `json:"returns"`
	RiskFreeRate float64   `json:"risk_free_rate"`
}

func (s *Server) handleSharpeRatio(c *gin.Context) {
	var req sharpeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ratio, err := finmath.SharpeRatio(req.Returns, req.RiskFreeRate)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sharpe_ratio": ratio})
}

type varRequest struct {
	Returns         []float64 `json:"returns"`
	ConfidenceLevel float64   `json:"confidence_level"`
}

func (s *Server) handleValueAtRisk(c *gin.Context) {
	var req varRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	v, err := finmath.ValueAtRisk(req.Returns, req.ConfidenceLevel)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"value_at_risk": v})
}
