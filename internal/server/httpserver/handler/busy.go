package handler

import "net/http"


// processBusy reports whether the caller holds a live session,
// touching it as a side effect. Pollers use this for idle detection,
// so neither outcome is an error.
func (h *Handler) processBusy(r *http.Request) (*ResultResponse, error) {
	result := "false"
	if _, ok := h.resolveSession(r); ok {
		result = "true"
	}
	return &ResultResponse{Result: result}, nil
}
