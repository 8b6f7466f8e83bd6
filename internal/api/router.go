package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/hiperfaturometro/hiperfaturometro/internal/cache"
	"github.com/hiperfaturometro/hiperfaturometro/internal/errors"
	"github.com/hiperfaturometro/hiperfaturometro/internal/monitoring"
	"github.com/hiperfaturometro/hiperfaturometro/internal/security"
)

const apiVersion = "1.0.0"

// Server holds the API handlers and their collaborators.
type Server struct {
	service *DataService
	log     *monitoring.Logger
}

// NewServer creates the handler set over a data service.
func NewServer(service *DataService, log *monitoring.Logger) *Server {
	return &Server{service: service, log: log}
}

// Router builds the gin engine with all routes and middleware. The API is
// read-only; every response is wrapped in the standard envelope.
func (s *Server) Router(responseCache *cache.Cache) *gin.Engine {
	r := gin.New()

	r.Use(requestLogger(s.log))
	r.Use(errors.ErrorHandler())
	r.Use(errors.RecoveryHandler())

	sec := security.NewMiddleware(security.DefaultConfig())
	r.Use(sec.Headers)
	r.Use(sec.RequestTimeout)
	r.Use(sec.RateLimitByIP)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	if responseCache != nil {
		api.Use(responseCache.Middleware())
	}

	api.GET("/", s.root)
	api.GET("/statistics", s.statistics)
	api.GET("/cases", s.cases)
	api.GET("/cases/by-orgao", s.casesByAgency)
	api.GET("/cases/:id", s.caseDetail)
	api.GET("/cartel-types", s.cartelTypes)
	api.GET("/health", s.health)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func (s *Server) root(c *gin.Context) {
	c.JSON(http.StatusOK, OK("Hiperfaturômetro API - Medindo a Corrupção em Licitações Públicas", gin.H{
		"version":     apiVersion,
		"description": "API para análise de licitações públicas suspeitas",
		"endpoints": gin.H{
			"statistics":     "/api/statistics",
			"cases":          "/api/cases",
			"case_detail":    "/api/cases/{case_id}",
			"cases_by_orgao": "/api/cases/by-orgao",
			"cartel_types":   "/api/cartel-types",
		},
	}))
}

func (s *Server) statistics(c *gin.Context) {
	stats, err := s.service.Statistics()
	if err != nil {
		c.Error(errors.NewPersistenceError("Erro ao buscar estatísticas", err))
		return
	}
	c.JSON(http.StatusOK, OK("Estatísticas recuperadas com sucesso", stats))
}

func (s *Server) cases(c *gin.Context) {
	limit := 10
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 || parsed > 100 {
			c.Error(errors.NewValidationError("O parâmetro limit deve estar entre 1 e 100"))
			return
		}
		limit = parsed
	}

	filters := CaseFilters{
		Limit:     limit,
		RiskLevel: c.Query("risk_level"),
		Agency:    c.Query("orgao"),
		Priority:  c.Query("priority_level"),
	}

	items, err := s.service.Cases(filters)
	if err != nil {
		c.Error(errors.NewPersistenceError("Erro ao buscar casos", err))
		return
	}
	c.JSON(http.StatusOK, OK(fmt.Sprintf("Recuperados %d casos", len(items)), items))
}

func (s *Server) caseDetail(c *gin.Context) {
	id := c.Param("id")

	found, ok, err := s.service.CaseByID(id)
	if err != nil {
		c.Error(errors.NewPersistenceError("Erro ao buscar caso", err))
		return
	}
	if !ok {
		c.Error(errors.NewNotFoundError(fmt.Sprintf("Caso %s não encontrado", id)))
		return
	}
	c.JSON(http.StatusOK, OK("Caso recuperado com sucesso", found))
}

func (s *Server) casesByAgency(c *gin.Context) {
	groups, err := s.service.CasesByAgency()
	if err != nil {
		c.Error(errors.NewPersistenceError("Erro ao buscar casos por órgão", err))
		return
	}
	c.JSON(http.StatusOK, OK("Casos por órgão recuperados com sucesso", groups))
}

func (s *Server) cartelTypes(c *gin.Context) {
	c.JSON(http.StatusOK, OK("Tipos de cartel recuperados com sucesso", s.service.CartelTypes()))
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, OK("API funcionando corretamente", gin.H{
		"status":  "healthy",
		"version": apiVersion,
	}))
}

// requestLogger records every request with its status and latency.
func requestLogger(log *monitoring.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.RequestLogger(c.Request.Method, c.Request.URL.Path, c.ClientIP(), c.Writer.Status(), time.Since(start))
	}
}
