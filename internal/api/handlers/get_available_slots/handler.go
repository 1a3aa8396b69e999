package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonCheckout/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SalonCheckout/internal/usecase/get_available_slots"
)

const (
	msgInvalidSalonID = "некорректный ID салона"
	msgMissingDate    = "дата обязательна"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := strconv.ParseInt(mux.Vars(r)["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/available-slots - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /salons/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(salonID, dateStr)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidSalonID)
		default:
			h.logger.Error("GET /salons/{id}/available-slots - Failed to get slots: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{id}/available-slots - Slots retrieved: salon_id=%d, date=%s, slots_count=%d, degraded=%t",
		salonID, dateStr, len(result.Slots), result.Degraded)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
