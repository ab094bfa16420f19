package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Message: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal error", Error: err.Error()})
}

type DressRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price"`
	SalePrice   *decimal.Decimal `json:"sale_price"`
	SKU         string           `json:"sku"`
	Stock       int              `json:"stock"`
	Designer    string           `json:"designer"`
	Style       string           `json:"style"`
	Silhouette  string           `json:"silhouette"`
	Neckline    string           `json:"neckline"`
	SleeveStyle string           `json:"sleeve_style"`
	Color       string           `json:"color"`
	Fabric      string           `json:"fabric"`
	TrainStyle  string           `json:"train_style"`
	IsAvailable bool             `json:"is_available"`
	IsFeatured  bool             `json:"is_featured"`
	CategoryID  int64            `json:"category_id"`
}

// /dresses のAPI。読み取りは公開、書き込みはAdmin/Manager。
type DressHandler struct {
	uc *usecase.DressUsecase
}

// DI
func NewDressHandler(uc *usecase.DressUsecase) *DressHandler {
	return &DressHandler{uc: uc}
}

func (h *DressHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	staff := []echo.MiddlewareFunc{
		middleware.AuthJWT(cfg),
		middleware.RequireRoles(model.RoleAdmin, model.RoleManager),
	}

	e.GET("/dresses", h.list)
	e.GET("/dresses/featured", h.featured)
	e.GET("/dresses/:id", h.detail)
	e.POST("/dresses", h.create, staff...)
	e.PUT("/dresses/:id", h.update, staff...)
	e.DELETE("/dresses/:id", h.delete, staff...)
}

// search > categoryId > 全件 の優先順。
func (h *DressHandler) list(c echo.Context) error {
	search := c.QueryParam("search")

	var categoryID *int64
	if v := c.QueryParam("categoryId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid categoryId"})
		}
		categoryID = &id
	}

	dresses, err := h.uc.List(c.Request().Context(), search, categoryID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, dresses)
}

func (h *DressHandler) featured(c echo.Context) error {
	dresses, err := h.uc.Featured(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, dresses)
}

func (h *DressHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	d, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, d)
}

func (h *DressHandler) create(c echo.Context) error {
	var req DressRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	d, err := h.uc.Create(c.Request().Context(), dressInputFromRequest(req))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, d)
}

func (h *DressHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	var req DressRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	d, err := h.uc.Update(c.Request().Context(), id, dressInputFromRequest(req))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, d)
}

func (h *DressHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "dress deleted"})
}

func dressInputFromRequest(req DressRequest) usecase.DressInput {
	return usecase.DressInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		SalePrice:   req.SalePrice,
		SKU:         req.SKU,
		Stock:       req.Stock,
		Designer:    req.Designer,
		Style:       req.Style,
		Silhouette:  req.Silhouette,
		Neckline:    req.Neckline,
		SleeveStyle: req.SleeveStyle,
		Color:       req.Color,
		Fabric:      req.Fabric,
		TrainStyle:  req.TrainStyle,
		IsAvailable: req.IsAvailable,
		IsFeatured:  req.IsFeatured,
		CategoryID:  req.CategoryID,
	}
}
