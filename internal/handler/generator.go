package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/vaultpass/vaultpass-client/internal/model"
	"github.com/vaultpass/vaultpass-client/internal/service"
)

// GeneratorHandler handles HTTP requests for password generation.
type GeneratorHandler struct {
	service *service.GeneratorService
}

// NewGeneratorHandler creates a new GeneratorHandler.
func NewGeneratorHandler(svc *service.GeneratorService) *GeneratorHandler {
	return &GeneratorHandler{service: svc}
}

// HandleGenerate handles POST /api/v1/generate requests. An empty body
// generates with the default policy.
func (h *GeneratorHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req model.GenerateRequest
	if !decodeBody(w, r, &req, true) {
		return
	}

	resp, err := h.service.Generate(req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleStrength handles POST /api/v1/strength requests.
func (h *GeneratorHandler) HandleStrength(w http.ResponseWriter, r *http.Request) {
	var req model.StrengthRequest
	if !decodeBody(w, r, &req, false) {
		return
	}

	resp, err := h.service.Strength(req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// decodeBody reads a JSON body into v, writing the error response itself
// when decoding fails.
func decodeBody(w http.ResponseWriter, r *http.Request, v any, allowEmpty bool) bool {
	if r.Body == nil {
		if allowEmpty {
			return true
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return false
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
	defer r.Body.Close()

	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || (allowEmpty && errors.Is(err, io.EOF)) {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
		return false
	}
	writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
	return false
}

func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrInvalidRequest) {
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorResponse(msg string) map[string]string {
	return map[string]string{"error": msg}
}
