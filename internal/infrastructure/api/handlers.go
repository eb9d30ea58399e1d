package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"helpdesk-shopify-orders/internal/application"
	"helpdesk-shopify-orders/internal/domain"
	"helpdesk-shopify-orders/internal/ports"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// SettingsManager is the part of the settings service the handlers use
type SettingsManager interface {
	GetMailbox(ctx context.Context, mailboxID string) (*domain.Mailbox, error)
	GetMailboxSettings(ctx context.Context, mailboxID string) (*application.MailboxSettingsInput, error)
	SaveMailboxSettings(ctx context.Context, mailboxID string, input application.MailboxSettingsInput) (*application.SettingsNotice, error)
	TestGlobalConnection(ctx context.Context) (*application.SettingsNotice, error)
}

// Handler exposes the order panel and settings endpoints
type Handler struct {
	panels    ports.OrderPanelProvider
	settings  SettingsManager
	customers ports.CustomerRepository
	logger    zerolog.Logger
}

// NewHandler creates a new Handler
func NewHandler(
	panels ports.OrderPanelProvider,
	settings SettingsManager,
	customers ports.CustomerRepository,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		panels:    panels,
		settings:  settings,
		customers: customers,
		logger:    logger,
	}
}

// Register binds the handlers to r
func (h *Handler) Register(r chi.Router) {
	r.Post("/shopify/ajax", h.ajax)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/customers/{customerId}/orders-panel", h.ordersPanel)
		r.Get("/mailboxes/{mailboxId}/shopify", h.getMailboxSettings)
		r.Post("/mailboxes/{mailboxId}/shopify", h.saveMailboxSettings)
		r.Post("/shopify/test", h.testGlobalConnection)
	})
}

// AjaxRequest is the body of the asynchronous panel request
type AjaxRequest struct {
	Action         string   `json:"action"`
	MailboxID      string   `json:"mailbox_id"`
	CustomerEmails []string `json:"customer_emails"`
}

// AjaxResponse is returned by the asynchronous panel request
type AjaxResponse struct {
	Status  string         `json:"status"`
	Msg     string         `json:"msg"`
	Orders  []domain.Order `json:"orders"`
	ShopURL string         `json:"shop_url"`
}

// ajax godoc
// @Summary Fetch a customer's recent Shopify orders
// @Tags shopify
// @Accept json
// @Produce json
// @Param request body AjaxRequest true "Action and candidate emails"
// @Success 200 {object} AjaxResponse
// @Router /shopify/ajax [post]
func (h *Handler) ajax(w http.ResponseWriter, r *http.Request) {
	response := AjaxResponse{Status: "error", Orders: []domain.Order{}}

	var req AjaxRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Msg = "Invalid request body"
		writeJSON(w, http.StatusBadRequest, response)
		return
	}

	switch req.Action {
	case "orders":
		h.ajaxOrders(r.Context(), req, &response)
	default:
		response.Msg = "Unknown action"
	}

	if response.Status == "error" && response.Msg == "" {
		response.Msg = "Unknown error occured"
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) ajaxOrders(ctx context.Context, req AjaxRequest, response *AjaxResponse) {
	var mailbox *domain.Mailbox
	if req.MailboxID != "" {
		found, err := h.settings.GetMailbox(ctx, req.MailboxID)
		if err != nil && !errors.Is(err, domain.ErrMailboxNotFound) {
			h.logger.Error().Err(err).Str("mailbox", req.MailboxID).Msg("Failed to load mailbox")
			response.Msg = err.Error()
			return
		}
		mailbox = found
	}

	customer := h.findCustomer(ctx, req.CustomerEmails)

	panel, err := h.panels.FetchOrders(ctx, mailbox, req.CustomerEmails, customer)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to fetch Shopify orders")
		response.Msg = err.Error()
		return
	}

	response.Status = "success"
	response.Msg = panel.Message
	response.Orders = panel.Orders
	response.ShopURL = panel.ShopURL
}

// findCustomer returns the helpdesk customer owning the first known candidate email.
// Nil means none is known and the lookup runs for a transient customer.
func (h *Handler) findCustomer(ctx context.Context, emails []string) *domain.Customer {
	for _, email := range emails {
		email = strings.TrimSpace(email)
		if email == "" {
			continue
		}
		customer, err := h.customers.FindByEmail(ctx, email)
		if err != nil {
			h.logger.Warn().Err(err).Msg("Failed to look up customer by email")
			continue
		}
		if customer != nil {
			return customer
		}
	}
	return nil
}

// ordersPanel godoc
// @Summary Render the recent-orders panel from cached results
// @Tags shopify
// @Produce json
// @Param customerId path string true "Helpdesk customer id"
// @Param mailbox_id query string false "Mailbox id"
// @Success 200 {object} domain.OrderPanel
// @Success 204 "Nothing to render"
// @Failure 404 {object} map[string]string
// @Router /api/v1/customers/{customerId}/orders-panel [get]
func (h *Handler) ordersPanel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	customer, err := h.customers.GetByID(ctx, chi.URLParam(r, "customerId"))
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to load customer")
		writeError(w, http.StatusInternalServerError, "failed to load customer")
		return
	}
	if customer == nil {
		writeError(w, http.StatusNotFound, "customer not found")
		return
	}

	var mailbox *domain.Mailbox
	if mailboxID := r.URL.Query().Get("mailbox_id"); mailboxID != "" {
		mailbox, err = h.settings.GetMailbox(ctx, mailboxID)
		if err != nil {
			h.writeServiceError(w, err)
			return
		}
	}

	panel, err := h.panels.Panel(ctx, mailbox, customer)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to build order panel")
		writeError(w, http.StatusInternalServerError, "failed to build order panel")
		return
	}
	if panel == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, panel)
}

// getMailboxSettings godoc
// @Summary Get the Shopify settings of a mailbox
// @Tags settings
// @Produce json
// @Param mailboxId path string true "Mailbox id"
// @Success 200 {object} application.MailboxSettingsInput
// @Failure 404 {object} map[string]string
// @Router /api/v1/mailboxes/{mailboxId}/shopify [get]
func (h *Handler) getMailboxSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.GetMailboxSettings(r.Context(), chi.URLParam(r, "mailboxId"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// saveMailboxSettings godoc
// @Summary Save the Shopify settings of a mailbox and test them
// @Tags settings
// @Accept json
// @Produce json
// @Param mailboxId path string true "Mailbox id"
// @Param settings body application.MailboxSettingsInput true "Shopify settings"
// @Success 200 {object} application.SettingsNotice
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/mailboxes/{mailboxId}/shopify [post]
func (h *Handler) saveMailboxSettings(w http.ResponseWriter, r *http.Request) {
	var input application.MailboxSettingsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	notice, err := h.settings.SaveMailboxSettings(r.Context(), chi.URLParam(r, "mailboxId"), input)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notice)
}

// testGlobalConnection godoc
// @Summary Test the process-wide Shopify credentials
// @Tags settings
// @Produce json
// @Success 200 {object} application.SettingsNotice
// @Router /api/v1/shopify/test [post]
func (h *Handler) testGlobalConnection(w http.ResponseWriter, r *http.Request) {
	notice, err := h.settings.TestGlobalConnection(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notice)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrMailboxNotFound) {
		writeError(w, http.StatusNotFound, "mailbox not found")
		return
	}
	h.logger.Error().Err(err).Msg("Request failed")
	writeError(w, http.StatusInternalServerError, "internal server error")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
