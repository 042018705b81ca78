package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/vinyah/dinesh-pvc-pipes-sub001/internal/domain"
	"github.com/vinyah/dinesh-pvc-pipes-sub001/internal/service"
	"github.com/vinyah/dinesh-pvc-pipes-sub001/pkg/httputil"
	"github.com/vinyah/dinesh-pvc-pipes-sub001/pkg/validator"
)

// CheckoutHandler handles HTTP requests for the checkout flow.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

// selectDeliveryRequest is the JSON body for choosing a delivery option.
type selectDeliveryRequest struct {
	Option string `json:"option" validate:"required,oneof=standard express premium"`
}

// applyCouponRequest is the JSON body for applying a coupon.
type applyCouponRequest struct {
	Code string `json:"code" validate:"required"`
}

// deliveryOption pairs an option id with its price for the delivery step.
type deliveryOption struct {
	ID    string  `json:"id"`
	Price float64 `json:"price"`
}

// Begin handles POST /api/v1/checkout
func (h *CheckoutHandler) Begin(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.BeginCheckout(r.Context(), shopperID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: session})
}

// SaveAddress handles PUT /api/v1/checkout/address
func (h *CheckoutHandler) SaveAddress(w http.ResponseWriter, r *http.Request) {
	var input service.AddressInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.service.SaveAddress(r.Context(), shopperID(r), input); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string]string{"status": "saved"},
	})
}

// GetAddress handles GET /api/v1/checkout/address
func (h *CheckoutHandler) GetAddress(w http.ResponseWriter, r *http.Request) {
	addr, err := h.service.GetAddress(r.Context(), shopperID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: addr})
}

// DeliveryOptions handles GET /api/v1/checkout/delivery/options
func (h *CheckoutHandler) DeliveryOptions(w http.ResponseWriter, r *http.Request) {
	options := make([]deliveryOption, 0, 3)
	for _, id := range domain.DeliveryOptions() {
		price, _ := domain.DeliveryPrice(id)
		options = append(options, deliveryOption{ID: id, Price: price})
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: options})
}

// SelectDelivery handles PUT /api/v1/checkout/delivery
func (h *CheckoutHandler) SelectDelivery(w http.ResponseWriter, r *http.Request) {
	var req selectDeliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	session, err := h.service.SelectDelivery(r.Context(), shopperID(r), req.Option)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: session})
}

// ApplyCoupon handles POST /api/v1/checkout/coupon
func (h *CheckoutHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	var req applyCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	session, err := h.service.ApplyCoupon(r.Context(), shopperID(r), req.Code)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: session})
}

// Summary handles GET /api/v1/checkout/summary
func (h *CheckoutHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context(), shopperID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: summary})
}

// PlaceOrder handles POST /api/v1/checkout/order
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.PlaceOrder(r.Context(), shopperID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: summary})
}
