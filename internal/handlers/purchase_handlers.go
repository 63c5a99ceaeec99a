package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/coursecms/coursesite/internal/constants"
	"github.com/coursecms/coursesite/internal/service"
	"github.com/coursecms/coursesite/internal/utils"
)

// PurchaseHandler serves the checkout redirect and the payment webhook.
//
// Both endpoints answer with the plain bodies the payment page and the
// payment provider already expect (`{url}`, `{message}`, `{received}`),
// not with the API envelope.
type PurchaseHandler struct {
	purchaseService PurchaseServiceInterface
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(purchaseService PurchaseServiceInterface) *PurchaseHandler {
	if purchaseService == nil {
		panic("purchaseService cannot be nil")
	}
	return &PurchaseHandler{purchaseService: purchaseService}
}

// Checkout returns the hosted checkout URL the visitor is redirected to.
func (h *PurchaseHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendMessage(w, http.StatusMethodNotAllowed, constants.MsgMethodNotAllowed)
		return
	}

	url, err := h.purchaseService.CheckoutURL()
	if err != nil {
		log.Error().Err(err).Msg("Checkout requested without a configured product URL")
		sendMessage(w, http.StatusInternalServerError, constants.MsgCheckoutConfigMissing)
		return
	}

	utils.SendJSON(w, http.StatusOK, map[string]string{"url": url})
}

// PurchaseWebhook confirms a payment and marks the buyer as paid.
//
// The request is form encoded with `email` and `product_id`. A buyer
// without an identity is acknowledged with 200 so the provider stops
// retrying; a failed lookup answers 404 and a failed write 500.
func (h *PurchaseHandler) PurchaseWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendMessage(w, http.StatusMethodNotAllowed, constants.MsgMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxRequestBodySize)
	if err := r.ParseForm(); err != nil {
		sendMessage(w, http.StatusBadRequest, constants.MsgWebhookMissingFields)
		return
	}

	email := r.PostFormValue(constants.FormFieldEmail)
	productID := r.PostFormValue(constants.FormFieldProductID)

	err := h.purchaseService.ConfirmPurchase(r.Context(), email, productID)
	switch {
	case err == nil:
		utils.SendJSON(w, http.StatusOK, map[string]bool{"received": true})
	case errors.Is(err, service.ErrProductNotConfigured):
		log.Error().Msg("Purchase webhook called without a configured product id")
		sendMessage(w, http.StatusInternalServerError, constants.MsgWebhookConfigMissing)
	case errors.Is(err, service.ErrMissingFields):
		sendMessage(w, http.StatusBadRequest, constants.MsgWebhookMissingFields)
	case errors.Is(err, service.ErrInvalidProduct):
		sendMessage(w, http.StatusBadRequest, constants.MsgWebhookInvalidProduct)
	case errors.Is(err, service.ErrUserNotFound):
		sendMessage(w, http.StatusOK, constants.MsgWebhookUserAbsentAck)
	case errors.Is(err, service.ErrUserLookup):
		log.Error().Err(err).Msg("Purchase webhook user lookup failed")
		sendMessage(w, http.StatusNotFound, constants.MsgWebhookUserNotFound)
	default:
		log.Error().Err(err).Msg("Purchase webhook failed to record payment")
		sendMessage(w, http.StatusInternalServerError, constants.MsgWebhookError)
	}
}

// sendMessage writes the bare `{message}` body used by the payment and publish endpoints
func sendMessage(w http.ResponseWriter, status int, message string) {
	utils.SendJSON(w, status, map[string]string{"message": message})
}

// MessageMethodNotAllowed answers a wrong method on the payment and publish
// endpoints with their bare `{message}` body.
func MessageMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	sendMessage(w, http.StatusMethodNotAllowed, constants.MsgMethodNotAllowed)
}
