package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pantrychef/backend/internal/domain"
	"github.com/pantrychef/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	pantryService *usecase.PantryService
	logger        *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(pantryService *usecase.PantryService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		pantryService: pantryService,
		logger:        logger,
	}
}

type addPantryItemRequest struct {
	ItemName       string     `json:"itemName" binding:"required"`
	Quantity       float64    `json:"quantity" binding:"gte=0"`
	Unit           string     `json:"unit"`
	ItemExpiration *time.Time `json:"itemExpiration"`
}

type parseIngredientRequest struct {
	Text string `json:"text" binding:"required"`
}

type availabilityRequest struct {
	Ingredients     []domain.IngredientLine `json:"ingredients"`
	IngredientLines []string                `json:"ingredientLines"`
}

// lines prefers the structured list and falls back to plain strings.
func (r availabilityRequest) lines() []domain.IngredientLine {
	if len(r.Ingredients) > 0 {
		return r.Ingredients
	}
	return domain.LinesFromStrings(r.IngredientLines)
}

type substitutionRequest struct {
	IngredientName string `json:"ingredientName" binding:"required"`
	OriginalText   string `json:"originalText"`
	RecipeName     string `json:"recipeName"`
	CookingMethod  string `json:"cookingMethod"`
	UseAI          bool   `json:"useAI"`
}

type substitutedRecipeRequest struct {
	Recipe        *domain.Recipe         `json:"recipe" binding:"required"`
	Substitutions domain.SubstitutionMap `json:"substitutions"`
}

type deductionRequest struct {
	Ingredients []domain.UsedIngredient `json:"ingredients" binding:"required"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "pantrychef-backend",
		"version": "1.0.0",
	})
}

// ListPantry handles GET /users/:userId/pantry
func (h *Handler) ListPantry(c *gin.Context) {
	items, err := h.pantryService.ListPantry(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// AddPantryItem handles POST /users/:userId/pantry
func (h *Handler) AddPantryItem(c *gin.Context) {
	var req addPantryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, err)
		return
	}

	item, err := h.pantryService.AddPantryItem(c.Request.Context(), c.Param("userId"), domain.PantryItem{
		ItemName:       req.ItemName,
		Quantity:       req.Quantity,
		Unit:           req.Unit,
		ItemExpiration: req.ItemExpiration,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// ParseIngredient handles POST /users/:userId/ingredients/parse
func (h *Handler) ParseIngredient(c *gin.Context) {
	var req parseIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, err)
		return
	}

	parsed, err := h.pantryService.ParseIngredient(c.Request.Context(), c.Param("userId"), req.Text)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, parsed)
}

// CheckAvailability handles POST /users/:userId/availability
func (h *Handler) CheckAvailability(c *gin.Context) {
	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, err)
		return
	}
	if req.Ingredients == nil && req.IngredientLines == nil {
		h.respondBadRequest(c, errors.New("ingredients or ingredientLines is required"))
		return
	}

	result, err := h.pantryService.CheckIngredientAvailability(c.Request.Context(), c.Param("userId"), req.lines())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// FindSubstitutes handles POST /users/:userId/substitutions
func (h *Handler) FindSubstitutes(c *gin.Context) {
	var req substitutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, err)
		return
	}

	candidates, err := h.pantryService.FindSubstitutes(c.Request.Context(), c.Param("userId"), usecase.SubstitutionRequest{
		IngredientName: req.IngredientName,
		OriginalText:   req.OriginalText,
		RecipeName:     req.RecipeName,
		CookingMethod:  req.CookingMethod,
		UseAI:          req.UseAI,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	if candidates == nil {
		candidates = []domain.SubstitutionCandidate{}
	}
	c.JSON(http.StatusOK, gin.H{
		"ingredient":  req.IngredientName,
		"substitutes": candidates,
	})
}

// CreateSubstitutedRecipe handles POST /recipes/substitute
func (h *Handler) CreateSubstitutedRecipe(c *gin.Context) {
	var req substitutedRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, err)
		return
	}

	modified, err := h.pantryService.CreateSubstitutedRecipe(req.Recipe, req.Substitutions)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, modified)
}

// PlanDeduction handles POST /users/:userId/deductions/plan
func (h *Handler) PlanDeduction(c *gin.Context) {
	var req deductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, err)
		return
	}

	plan, err := h.pantryService.PlanDeduction(c.Request.Context(), c.Param("userId"), req.Ingredients)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// SubtractIngredients handles POST /users/:userId/deductions
func (h *Handler) SubtractIngredients(c *gin.Context) {
	var req deductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, err)
		return
	}

	result, err := h.pantryService.SubtractIngredientsFromPantry(c.Request.Context(), c.Param("userId"), req.Ingredients)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ConfirmDeductions handles POST /users/:userId/deductions/confirm
func (h *Handler) ConfirmDeductions(c *gin.Context) {
	var req deductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, err)
		return
	}

	result, err := h.pantryService.ConfirmDeductions(c.Request.Context(), c.Param("userId"), req.Ingredients)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request body",
		"details": err.Error(),
	})
}

// respondError maps domain errors to HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrPantryItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", requestid.Get(c)),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
