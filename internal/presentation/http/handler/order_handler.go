package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/application/service"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/enum"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/repository"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/presentation/http/dto/request"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/presentation/http/dto/response"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/pkg/pagination"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create handles the order settlement request
func (h *OrderHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.CreateOrderInput{
		CreatedBy:       *userID,
		CustomerID:      req.CustomerID,
		EmployeeID:      req.EmployeeID,
		BuyerName:       req.BuyerName,
		OrderType:       enum.OrderType(req.OrderType),
		Items:           toItemInputs(req.Items),
		Payment:         toPaymentSlice(req.Payment),
		DiscountPercent: req.DiscountPercent,
		DiscountAmount:  toCentsPtr(req.DiscountAmount),
		CouponID:        req.CouponID,
		BankAccountID:   req.BankAccountID,
		AlreadyPaid:     req.AlreadyPaid,
		CardFeeExempt:   req.CardFeeExempt,
		BoletoFeeExempt: req.BoletoFeeExempt,
		PixChargeID:     req.PixChargeID,
		DeliveryFee:     toCents(req.DeliveryFee),
		DeliveryDate:    req.DeliveryDate,
		DeliveryType:    req.DeliveryType,
		Notes:           req.Notes,
	}
	if req.SecondaryPayment != nil {
		slice := toPaymentSlice(*req.SecondaryPayment)
		input.SecondaryPayment = &slice
	}
	if req.Installments != nil {
		input.Installments = &service.InstallmentSpec{
			Count:      req.Installments.Count,
			DayOffsets: req.Installments.DayOffsets,
		}
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", order)
}

// CreateCounterSale handles the point-of-sale counter sale request
func (h *OrderHandler) CreateCounterSale(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateCounterSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.CounterSaleInput{
		CreatedBy:      *userID,
		CustomerID:     req.CustomerID,
		BuyerName:      req.BuyerName,
		Items:          toItemInputs(req.Items),
		Payment:        toPaymentSlice(req.Payment),
		BankAccountID:  req.BankAccountID,
		DiscountAmount: toCentsPtr(req.DiscountAmount),
		Notes:          req.Notes,
	}

	order, err := h.orderService.CreateCounterSale(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale completed successfully", order)
}

// Get handles retrieving a single order with its financial records
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// List handles listing orders
func (h *OrderHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			status := enum.OrderStatus(statusInt)
			params.Status = &status
		}
	}

	if paymentStatusStr := c.Query("payment_status"); paymentStatusStr != "" {
		if statusInt, err := strconv.Atoi(paymentStatusStr); err == nil {
			status := enum.PaymentStatus(statusInt)
			params.PaymentStatus = &status
		}
	}

	if orderTypeStr := c.Query("order_type"); orderTypeStr != "" {
		if typeInt, err := strconv.Atoi(orderTypeStr); err == nil {
			orderType := enum.OrderType(typeInt)
			params.OrderType = &orderType
		}
	}

	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		if customerID, err := uuid.Parse(customerIDStr); err == nil {
			params.CustomerID = &customerID
		}
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

func toItemInputs(items []request.OrderItemRequest) []service.CartItemInput {
	inputs := make([]service.CartItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, service.CartItemInput{
			ProductID:         item.ProductID,
			RawMaterialID:     item.RawMaterialID,
			Quantity:          item.Quantity,
			ExpectedUnitPrice: toCentsPtr(item.ExpectedUnitPrice),
			IsGift:            item.IsGift,
		})
	}
	return inputs
}

func toPaymentSlice(p request.PaymentRequest) service.PaymentSliceInput {
	return service.PaymentSliceInput{
		Method: enum.PaymentMethod(p.Method),
		Amount: toCents(p.Amount),
	}
}
