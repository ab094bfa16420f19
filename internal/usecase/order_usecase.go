package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type OrderUsecase struct {
	tx     repo.TransactionManager
	orders repo.OrderRepository
}

// DI
func NewOrderUsecase(tx repo.TransactionManager, orders repo.OrderRepository) *OrderUsecase {
	return &OrderUsecase{tx: tx, orders: orders}
}

type OrderItemInput struct {
	DressID             int64
	Quantity            int
	UnitPrice           decimal.Decimal
	TotalPrice          decimal.Decimal
	Size                string
	SpecialInstructions string
}

type OrderInput struct {
	OrderNumber     string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ShippingAddress string
	BillingAddress  string
	Tax             decimal.Decimal
	ShippingCost    decimal.Decimal
	Status          string
	PaymentStatus   string
	Notes           string
	Items           []OrderItemInput
}

// 明細はこの操作では差し替えない。
type OrderUpdateInput struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ShippingAddress string
	BillingAddress  string
	Status          string
	PaymentStatus   string
	Notes           string
	ShippedDate     *time.Time
	DeliveredDate   *time.Time
	Tax             decimal.Decimal
	ShippingCost    decimal.Decimal
}

// formatOrderNumber は WD + yyyyMMdd + 4桁ゼロ詰め連番を組み立てる。
// 9999を超えたら桁が増えるだけで採番は続く。
func formatOrderNumber(day string, seq int64) string {
	return fmt.Sprintf("WD%s%04d", day, seq)
}

// Create は注文と明細を1トランザクションで保存する。
// 注文番号が未指定なら日付キーのカウンタから採番する。
func (u *OrderUsecase) Create(ctx context.Context, in OrderInput) (model.Order, error) {
	if err := validateOrderCommon(in.CustomerName, in.CustomerEmail, in.Tax, in.ShippingCost); err != nil {
		return model.Order{}, err
	}
	if len(in.Items) == 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "at least one item required")
	}

	items := make([]model.OrderItem, 0, len(in.Items))
	subTotal := decimal.Zero
	for _, it := range in.Items {
		if it.DressID <= 0 {
			return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid dress_id")
		}
		if it.Quantity <= 0 {
			return model.Order{}, NewHTTPError(http.StatusBadRequest, "quantity must be > 0")
		}
		if it.UnitPrice.IsNegative() {
			return model.Order{}, NewHTTPError(http.StatusBadRequest, "unit_price must be >= 0")
		}

		totalPrice := it.TotalPrice
		if totalPrice.IsZero() {
			totalPrice = it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		}

		items = append(items, model.OrderItem{
			DressID:             it.DressID,
			Quantity:            it.Quantity,
			UnitPrice:           it.UnitPrice,
			TotalPrice:          totalPrice,
			Size:                it.Size,
			SpecialInstructions: it.SpecialInstructions,
		})
		subTotal = subTotal.Add(totalPrice)
	}

	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = model.OrderStatusPending
	}
	paymentStatus := strings.TrimSpace(in.PaymentStatus)
	if paymentStatus == "" {
		paymentStatus = model.PaymentStatusPending
	}

	var out model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		now := time.Now().UTC()

		orderNumber := strings.TrimSpace(in.OrderNumber)
		if orderNumber == "" {
			day := now.Format("20060102")
			seq, err := r.OrderNumbers().NextSequence(ctx, day)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			orderNumber = formatOrderNumber(day, seq)
		}

		order := model.Order{
			OrderNumber:     orderNumber,
			CustomerName:    strings.TrimSpace(in.CustomerName),
			CustomerEmail:   strings.TrimSpace(in.CustomerEmail),
			CustomerPhone:   in.CustomerPhone,
			ShippingAddress: in.ShippingAddress,
			BillingAddress:  in.BillingAddress,
			SubTotal:        subTotal,
			Tax:             in.Tax,
			ShippingCost:    in.ShippingCost,
			Total:           subTotal.Add(in.Tax).Add(in.ShippingCost),
			Status:          status,
			PaymentStatus:   paymentStatus,
			Notes:           in.Notes,
			OrderDate:       now,
			Items:           items,
		}

		id, err := r.Orders().Create(ctx, order)
		if err == repo.ErrConflict {
			return NewHTTPError(http.StatusBadRequest, "duplicate order number or unknown dress")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//明細＋ドレス込みで取り直して返す
		created, err := r.Orders().FindByID(ctx, id)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = created
		return nil
	})

	if err != nil {
		return model.Order{}, err
	}
	return out, nil
}

// Update は明細以外を置き換え、小計・合計は保存済みの明細から再計算する。
func (u *OrderUsecase) Update(ctx context.Context, id int64, in OrderUpdateInput) (model.Order, error) {
	if id <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := validateOrderCommon(in.CustomerName, in.CustomerEmail, in.Tax, in.ShippingCost); err != nil {
		return model.Order{}, err
	}

	var out model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		existing, err := r.Orders().FindByID(ctx, id)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		subTotal := decimal.Zero
		for _, it := range existing.Items {
			subTotal = subTotal.Add(it.TotalPrice)
		}

		existing.CustomerName = strings.TrimSpace(in.CustomerName)
		existing.CustomerEmail = strings.TrimSpace(in.CustomerEmail)
		existing.CustomerPhone = in.CustomerPhone
		existing.ShippingAddress = in.ShippingAddress
		existing.BillingAddress = in.BillingAddress
		existing.Status = in.Status
		existing.PaymentStatus = in.PaymentStatus
		existing.Notes = in.Notes
		existing.ShippedDate = in.ShippedDate
		existing.DeliveredDate = in.DeliveredDate
		existing.Tax = in.Tax
		existing.ShippingCost = in.ShippingCost
		existing.SubTotal = subTotal
		existing.Total = subTotal.Add(in.Tax).Add(in.ShippingCost)

		if err := r.Orders().Update(ctx, existing); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "order not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		updated, err := r.Orders().FindByID(ctx, id)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = updated
		return nil
	})

	if err != nil {
		return model.Order{}, err
	}
	return out, nil
}

func (u *OrderUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.orders.Delete(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// List はstatus指定があれば完全一致で絞り込む。order_date降順。
func (u *OrderUsecase) List(ctx context.Context, status string) ([]model.Order, error) {
	var (
		orders []model.Order
		err    error
	)

	if status != "" {
		orders, err = u.orders.ListByStatus(ctx, status)
	} else {
		orders, err = u.orders.ListAll(ctx)
	}

	if err != nil {
		return []model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return orders, nil
}

func (u *OrderUsecase) Get(ctx context.Context, id int64) (model.Order, error) {
	if id <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orders.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return o, nil
}

func (u *OrderUsecase) GetByNumber(ctx context.Context, orderNumber string) (model.Order, error) {
	if strings.TrimSpace(orderNumber) == "" {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid order number")
	}

	o, err := u.orders.FindByOrderNumber(ctx, orderNumber)
	if err == repo.ErrNotFound {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return o, nil
}

func validateOrderCommon(customerName string, customerEmail string, tax decimal.Decimal, shippingCost decimal.Decimal) error {
	if strings.TrimSpace(customerName) == "" {
		return NewHTTPError(http.StatusBadRequest, "customer_name required")
	}
	if strings.TrimSpace(customerEmail) == "" {
		return NewHTTPError(http.StatusBadRequest, "customer_email required")
	}
	if tax.IsNegative() {
		return NewHTTPError(http.StatusBadRequest, "tax must be >= 0")
	}
	if shippingCost.IsNegative() {
		return NewHTTPError(http.StatusBadRequest, "shipping_cost must be >= 0")
	}
	return nil
}
