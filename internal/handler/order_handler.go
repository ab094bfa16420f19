package handler

import (
	"net/http"
	"strconv"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type OrderItemRequest struct {
	DressID             int64           `json:"dress_id"`
	Quantity            int             `json:"quantity"`
	UnitPrice           decimal.Decimal `json:"unit_price"`
	TotalPrice          decimal.Decimal `json:"total_price"`
	Size                string          `json:"size"`
	SpecialInstructions string          `json:"special_instructions"`
}

type OrderCreateRequest struct {
	OrderNumber     string             `json:"order_number"`
	CustomerName    string             `json:"customer_name"`
	CustomerEmail   string             `json:"customer_email"`
	CustomerPhone   string             `json:"customer_phone"`
	ShippingAddress string             `json:"shipping_address"`
	BillingAddress  string             `json:"billing_address"`
	Tax             decimal.Decimal    `json:"tax"`
	ShippingCost    decimal.Decimal    `json:"shipping_cost"`
	Status          string             `json:"status"`
	PaymentStatus   string             `json:"payment_status"`
	Notes           string             `json:"notes"`
	Items           []OrderItemRequest `json:"items"`
}

// 明細は差し替え対象外。
type OrderUpdateRequest struct {
	CustomerName    string          `json:"customer_name"`
	CustomerEmail   string          `json:"customer_email"`
	CustomerPhone   string          `json:"customer_phone"`
	ShippingAddress string          `json:"shipping_address"`
	BillingAddress  string          `json:"billing_address"`
	Status          string          `json:"status"`
	PaymentStatus   string          `json:"payment_status"`
	Notes           string          `json:"notes"`
	ShippedDate     *time.Time      `json:"shipped_date"`
	DeliveredDate   *time.Time      `json:"delivered_date"`
	Tax             decimal.Decimal `json:"tax"`
	ShippingCost    decimal.Decimal `json:"shipping_cost"`
}

// /orders のAPI。すべて要認証。更新はAdmin/Manager、削除はAdminのみ。
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	authed := middleware.AuthJWT(cfg)

	e.GET("/orders", h.list, authed)
	e.GET("/orders/:id", h.detail, authed)
	e.GET("/orders/by-number/:orderNumber", h.byNumber, authed)
	e.POST("/orders", h.create, authed)
	e.PUT("/orders/:id", h.update, authed, middleware.RequireRoles(model.RoleAdmin, model.RoleManager))
	e.DELETE("/orders/:id", h.delete, authed, middleware.RequireRoles(model.RoleAdmin))
}

func (h *OrderHandler) list(c echo.Context) error {
	status := c.QueryParam("status")

	orders, err := h.uc.List(c.Request().Context(), status)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	o, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) byNumber(c echo.Context) error {
	o, err := h.uc.GetByNumber(c.Request().Context(), c.Param("orderNumber"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	items := make([]usecase.OrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.OrderItemInput{
			DressID:             it.DressID,
			Quantity:            it.Quantity,
			UnitPrice:           it.UnitPrice,
			TotalPrice:          it.TotalPrice,
			Size:                it.Size,
			SpecialInstructions: it.SpecialInstructions,
		})
	}

	o, err := h.uc.Create(c.Request().Context(), usecase.OrderInput{
		OrderNumber:     req.OrderNumber,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		Tax:             req.Tax,
		ShippingCost:    req.ShippingCost,
		Status:          req.Status,
		PaymentStatus:   req.PaymentStatus,
		Notes:           req.Notes,
		Items:           items,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, o)
}

func (h *OrderHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	var req OrderUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	o, err := h.uc.Update(c.Request().Context(), id, usecase.OrderUpdateInput{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		Status:          req.Status,
		PaymentStatus:   req.PaymentStatus,
		Notes:           req.Notes,
		ShippedDate:     req.ShippedDate,
		DeliveredDate:   req.DeliveredDate,
		Tax:             req.Tax,
		ShippingCost:    req.ShippingCost,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "order deleted"})
}
