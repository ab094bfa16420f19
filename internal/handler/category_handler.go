package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	IsActive    bool   `json:"is_active"`
	SortOrder   int    `json:"sort_order"`
}

// /categories のAPI。読み取りは公開、書き込みはAdmin/Manager。
type CategoryHandler struct {
	uc *usecase.CategoryUsecase
}

// DI
func NewCategoryHandler(uc *usecase.CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

func (h *CategoryHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	staff := []echo.MiddlewareFunc{
		middleware.AuthJWT(cfg),
		middleware.RequireRoles(model.RoleAdmin, model.RoleManager),
	}

	e.GET("/categories", h.list)
	e.GET("/categories/:id", h.detail)
	e.POST("/categories", h.create, staff...)
	e.PUT("/categories/:id", h.update, staff...)
	e.DELETE("/categories/:id", h.delete, staff...)
}

func (h *CategoryHandler) list(c echo.Context) error {
	categories, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	cat, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, cat)
}

func (h *CategoryHandler) create(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	cat, err := h.uc.Create(c.Request().Context(), usecase.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, cat)
}

func (h *CategoryHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	cat, err := h.uc.Update(c.Request().Context(), id, usecase.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, cat)
}

// ドレスが紐づくカテゴリは削除せず無効化になる。どちらも成功扱い。
func (h *CategoryHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	deactivated, err := h.uc.Delete(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	if deactivated {
		return c.JSON(http.StatusOK, SuccessResponse{Message: "category deactivated"})
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "category deleted"})
}
