package handler

import (
	"github.com/gin-gonic/gin"

	orderingapp "github.com/fieldserve/backend/internal/application/ordering"
	"github.com/fieldserve/backend/internal/domain/shared"
	"github.com/fieldserve/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles order intake and job endpoints
type OrderHandler struct {
	BaseHandler
	intake *orderingapp.IntakeService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(intake *orderingapp.IntakeService) *OrderHandler {
	return &OrderHandler{intake: intake}
}

// Submit accepts a service order. Customers order for themselves;
// admin-technicians may name a target customer to order on their behalf.
func (h *OrderHandler) Submit(c *gin.Context) {
	identityID, err := getIdentityID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req orderingapp.SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	req.RequesterID = identityID
	req.RequesterCanActOnBehalf = middleware.GetRole(c).CanActOnBehalfOfCustomers()

	resp, err := h.intake.Submit(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns one order with its jobs. Non-staff callers only see
// their own orders; other orders read as not found.
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	resp, err := h.intake.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if !middleware.GetRole(c).CanActOnBehalfOfCustomers() && resp.CustomerID != middleware.GetIdentityID(c) {
		h.NotFound(c, "Order not found")
		return
	}

	h.Success(c, resp)
}

// orderListQuery carries the order list query parameters
type orderListQuery struct {
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	CustomerID string `form:"customer_id" binding:"omitempty,max=128"`
}

// List returns the caller's orders. Staff may pass customer_id to list
// another customer's orders.
func (h *OrderHandler) List(c *gin.Context) {
	identityID, err := getIdentityID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var q orderListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	customerID := identityID
	if q.CustomerID != "" && q.CustomerID != identityID {
		if !middleware.GetRole(c).CanActOnBehalfOfCustomers() {
			h.Forbidden(c, "Listing another customer's orders requires the admin-technician role")
			return
		}
		customerID = q.CustomerID
	}

	filter := shared.DefaultFilter()
	if q.Page > 0 {
		filter.Page = q.Page
	}
	if q.PageSize > 0 {
		filter.PageSize = q.PageSize
	}

	orders, err := h.intake.ListCustomerOrders(c.Request.Context(), customerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}

// UpdateJobStatus applies a job status change
func (h *OrderHandler) UpdateJobStatus(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid job ID")
		return
	}

	var req orderingapp.UpdateJobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.intake.UpdateJobStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// serviceListQuery carries the service catalog query parameters
type serviceListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
	Category string `form:"category"`
}

// ListServices returns the selectable service catalog
func (h *OrderHandler) ListServices(c *gin.Context) {
	var q serviceListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := shared.DefaultFilter()
	if q.Page > 0 {
		filter.Page = q.Page
	}
	if q.PageSize > 0 {
		filter.PageSize = q.PageSize
	}
	filter.Search = q.Search
	if q.Category != "" {
		filter.Filters["category"] = q.Category
	}

	services, err := h.intake.ListServices(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, services)
}
