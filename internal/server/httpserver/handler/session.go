package handler

import "github.com/cloudward/console-gate/internal/core/domain"

// processSession rebuilds the login bundle for an already resolved
// entity. The dispatcher has touched the session before calling in.
func (h *Handler) processSession(entity *domain.Session) (*SessionBundle, error) {
	if entity == nil {
		return nil, domain.ErrSessionInfo
	}
	return h.sessionBundle(entity), nil
}

// sessionBundle pairs the current global info with the browser-safe
// projection of the session.
func (h *Handler) sessionBundle(entity *domain.Session) *SessionBundle {
	return &SessionBundle{
		GlobalSession: h.global.GlobalInfo(),
		UserSession:   entity.PublicView(),
	}
}
