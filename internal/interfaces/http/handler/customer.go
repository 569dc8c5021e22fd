package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	customerapp "github.com/fieldserve/backend/internal/application/customer"
	"github.com/fieldserve/backend/internal/domain/shared"
	"github.com/fieldserve/backend/internal/interfaces/http/middleware"
)

// CustomerHandler handles customer provisioning and lookup endpoints
type CustomerHandler struct {
	BaseHandler
	provisioning *customerapp.ProvisioningService
	search       *customerapp.SearchService
	activation   *customerapp.ActivationService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(
	provisioning *customerapp.ProvisioningService,
	search *customerapp.SearchService,
	activation *customerapp.ActivationService,
) *CustomerHandler {
	return &CustomerHandler{
		provisioning: provisioning,
		search:       search,
		activation:   activation,
	}
}

// Provision creates a new customer account. Anonymous callers provision
// themselves and receive a temporary credential; staff callers provision
// on behalf of a customer, which triggers the activation flow instead.
func (h *CustomerHandler) Provision(c *gin.Context) {
	var req customerapp.ProvisionCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	role := middleware.GetRole(c)
	if role.CanActOnBehalfOfCustomers() {
		staffID := middleware.GetIdentityID(c)
		req.StaffInitiated = true
		req.StaffID = &staffID
	}

	resp, err := h.provisioning.Provision(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns a single customer by ID
func (h *CustomerHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		h.BadRequest(c, "Customer ID is required")
		return
	}

	resp, err := h.provisioning.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// customerListQuery carries the customer list query parameters
type customerListQuery struct {
	Page           int    `form:"page" binding:"omitempty,min=1"`
	PageSize       int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search         string `form:"search"`
	Classification string `form:"classification" binding:"omitempty,oneof=residential commercial insurance"`
	Activated      *bool  `form:"activated"`
}

// List returns a paginated customer listing
func (h *CustomerHandler) List(c *gin.Context) {
	var q customerListQuery
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
	if q.Classification != "" {
		filter.Filters["classification"] = q.Classification
	}
	if q.Activated != nil {
		filter.Filters["activated"] = *q.Activated
	}

	result, err := h.provisioning.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Search performs a mode-detecting customer search. The search term is
// classified as a phone fragment, an email, or a name, and matched
// accordingly.
func (h *CustomerHandler) Search(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		h.BadRequest(c, "Query parameter 'q' is required")
		return
	}

	resp, err := h.search.Search(c.Request.Context(), term)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// CloseMatches returns customers whose names fuzzily match the given
// name, used to flag potential duplicates before intake.
func (h *CustomerHandler) CloseMatches(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		h.BadRequest(c, "Query parameter 'name' is required")
		return
	}

	results, err := h.search.CloseMatches(c.Request.Context(), name)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}

// RequestActivation (re)issues an activation message for an email
// address. The response body is identical for unknown emails,
// already-activated accounts, and successful sends; only a rate-limit
// breach is reported distinctly.
func (h *CustomerHandler) RequestActivation(c *gin.Context) {
	var req customerapp.ActivationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	req.RequestIP = c.ClientIP()
	req.UserAgent = c.Request.UserAgent()

	resp, err := h.activation.RequestActivation(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, shared.ErrRateLimited) {
			h.RateLimited(c, "Too many activation requests, try again later", h.activation.RetryAfterMinutes())
			return
		}
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
