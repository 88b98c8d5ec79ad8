package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ComandaApp/app/models"
	"ComandaApp/app/services"
)

const maxClipBytes = 16 << 20 // 16 MiB per recorded segment

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleGetMenu returns the customer menu: available items only.
func (h *Handlers) handleGetMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.Menu.GetAvailableMenu(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// handleGetFullMenu returns every item for the availability dashboard.
func (h *Handlers) handleGetFullMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.Menu.GetMenu(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *Handlers) handleSetAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid menu item id")
		return
	}

	var body struct {
		Available bool `json:"available"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Menu.SetAvailability(r.Context(), id, body.Available); err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handlers) handleGetDeliveryAreas(w http.ResponseWriter, r *http.Request) {
	areas, err := h.Delivery.GetAreas(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, areas)
}

func (h *Handlers) handleDeliveryQuote(w http.ResponseWriter, r *http.Request) {
	area := r.URL.Query().Get("area")
	if area == "" {
		respondError(w, http.StatusBadRequest, "area parameter is required")
		return
	}

	fee, err := h.Delivery.Quote(r.Context(), area)
	if errors.Is(err, services.ErrUnknownArea) {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"fee": fee})
}

func (h *Handlers) handleSaveDeliveryArea(w http.ResponseWriter, r *http.Request) {
	var area models.DeliveryArea
	if err := json.NewDecoder(r.Body).Decode(&area); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Delivery.SaveArea(r.Context(), area); err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handlers) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req models.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.Orders.Checkout(r.Context(), req)
	if errors.Is(err, services.ErrUnknownArea) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

func (h *Handlers) handleGetPrefs(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.Prefs.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, prefs)
}

func (h *Handlers) handleSavePrefs(w http.ResponseWriter, r *http.Request) {
	var prefs models.SessionPrefs
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	prefs.SessionID = chi.URLParam(r, "sessionID")

	if err := h.Prefs.Save(prefs); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, prefs)
}

func (h *Handlers) handleGetClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Clients.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, clients)
}

func (h *Handlers) handleSaveClient(w http.ResponseWriter, r *http.Request) {
	var client models.Client
	if err := json.NewDecoder(r.Body).Decode(&client); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Clients.Save(r.Context(), client); err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handlers) handleGetOrders(w http.ResponseWriter, r *http.Request) {
	status := models.OrderStatus(r.URL.Query().Get("status"))
	respondJSON(w, http.StatusOK, h.Orders.Orders(status))
}

func (h *Handlers) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	row, err := strconv.Atoi(chi.URLParam(r, "row"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order row")
		return
	}

	var body struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Orders.UpdateStatus(r.Context(), row, body.Status); err != nil {
		// The optimistic change has been reverted; the dashboard shows
		// the error and asks for a manual retry.
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handlers) handlePrint(w http.ResponseWriter, r *http.Request) {
	row, err := strconv.Atoi(chi.URLParam(r, "row"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order row")
		return
	}

	opts := services.PrintOptions{
		Kitchen: r.URL.Query().Get("kitchen") == "true",
		Target:  r.URL.Query().Get("target"),
	}

	dispatch, err := h.Print.Dispatch(r.Context(), row, opts)
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, dispatch)
}

func (h *Handlers) handleSalesSummary(w http.ResponseWriter, r *http.Request) {
	from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to")
	if from == "" || to == "" {
		respondError(w, http.StatusBadRequest, "from and to parameters are required")
		return
	}

	summary, err := h.Sales.Summary(r.Context(), from, to)
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (h *Handlers) handleSalesExport(w http.ResponseWriter, r *http.Request) {
	from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to")
	if from == "" || to == "" {
		respondError(w, http.StatusBadRequest, "from and to parameters are required")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="ventas-`+from+`-`+to+`.csv"`)
	if err := h.Sales.ExportCSV(r.Context(), from, to, w); err != nil {
		// Headers are gone; all we can do is log via the middleware.
		return
	}
}

// handleAddClip receives one recorded audio segment as a raw body.
func (h *Handlers) handleAddClip(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxClipBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "could not read clip")
		return
	}

	clip, err := h.Dictation.AddClip(chi.URLParam(r, "sessionID"), r.Header.Get("Content-Type"), data)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	clip.Data = nil
	respondJSON(w, http.StatusCreated, clip)
}

func (h *Handlers) handleGetClips(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.Dictation.Clips(chi.URLParam(r, "sessionID")))
}

func (h *Handlers) handleDeleteClip(w http.ResponseWriter, r *http.Request) {
	err := h.Dictation.DeleteClip(chi.URLParam(r, "sessionID"), chi.URLParam(r, "clipID"))
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handlers) handleDictationUpload(w http.ResponseWriter, r *http.Request) {
	text, err := h.Dictation.Upload(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		// An empty or corrupt clip list blocks the upload entirely; the
		// recordings are kept for a retry.
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"text": text})
}

func (h *Handlers) handleDictationReset(w http.ResponseWriter, r *http.Request) {
	h.Dictation.Reset(chi.URLParam(r, "sessionID"))
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
