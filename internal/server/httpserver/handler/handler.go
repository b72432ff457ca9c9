package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cloudward/console-gate/internal/core/domain"
	"github.com/cloudward/console-gate/internal/core/service"
	"github.com/cloudward/console-gate/internal/telemetry/metric"
)

// Cookie names on the browser side.
const (
	CookieSessionID = "session-id"
	CookieForgery   = "_xsrf"
	CookieAccount   = "account"
	CookieUsername  = "username"
	CookieRemember  = "remember"
)

// Action names accepted by the dispatcher.
const (
	ActionLogin   = "login"
	ActionLogout  = "logout"
	ActionSession = "session"
	ActionInit    = "init"
	ActionBusy    = "busy"
)

// Config carries the collaborators and tunables of the handler.
type Config struct {
	Sessions *service.SessionService
	Global   *service.GlobalInfoService
	Metrics  *metric.Metrics
	Logger   *slog.Logger

	// Resolver is used by the init action for hostname lookups.
	// Defaults to the system resolver.
	Resolver HostResolver

	// RememberFor is the lifetime of the account/username/remember
	// cookies set by a login with remember=yes.
	RememberFor time.Duration

	// StaticDir is the directory the application shell is served
	// from. Empty disables the shell.
	StaticDir string
}

// Handler dispatches console actions.
type Handler struct {
	sessions    *service.SessionService
	global      *service.GlobalInfoService
	metrics     *metric.Metrics
	logger      *slog.Logger
	resolver    HostResolver
	rememberFor time.Duration
	staticDir   string
}

// New creates a handler.
func New(cfg Config) *Handler {
	resolver := cfg.Resolver
	if resolver == nil {
		resolver = defaultResolver()
	}
	return &Handler{
		sessions:    cfg.Sessions,
		global:      cfg.Global,
		metrics:     cfg.Metrics,
		logger:      cfg.Logger,
		resolver:    resolver,
		rememberFor: cfg.RememberFor,
		staticDir:   cfg.StaticDir,
	}
}

// Dispatch handles POST / requests. It is the single point where
// errors become wire-level status/message pairs.
func (h *Handler) Dispatch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	action := r.FormValue("action")

	resp, err := h.dispatch(w, r, action)
	if err == nil && resp == nil {
		err = domain.ErrInternal.WithDetails("processor returned no response")
	}

	status := http.StatusOK
	if err != nil {
		status = statusForError(err)
		h.logger.Warn("action failed",
			"action", action,
			"status", status,
			"error", err,
		)
		h.writeError(w, status, err)
	} else {
		h.writeJSON(w, http.StatusOK, resp)
	}

	if h.metrics != nil {
		h.metrics.RequestsTotal.WithLabelValues(action, strconv.Itoa(status)).Inc()
		h.metrics.RequestDuration.WithLabelValues(action).Observe(time.Since(start).Seconds())
	}
}

// dispatch parses the action and runs the matching processor.
// Untyped processor failures are wrapped so internal detail never
// reaches the browser.
func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request, action string) (any, error) {
	switch action {
	case ActionLogin:
		resp, err := h.processLogin(w, r)
		return resp, wrapUntyped(err, domain.ErrNotAuthorized)

	case ActionInit:
		resp, err := h.processInit(r)
		return resp, wrapUntyped(err, domain.ErrNotAuthorized)

	case ActionBusy:
		if err := h.checkForgeryToken(w, r); err != nil {
			return nil, err
		}
		return h.processBusy(r)

	case ActionLogout:
		if err := h.checkForgeryToken(w, r); err != nil {
			return nil, err
		}
		resp, err := h.processLogout(w, r)
		return resp, wrapUntyped(err, domain.ErrInternal)

	case ActionSession:
		if err := h.checkForgeryToken(w, r); err != nil {
			return nil, err
		}
		entity, ok := h.resolveSession(r)
		if !ok {
			return nil, domain.ErrNotAuthorized
		}
		resp, err := h.processSession(entity)
		return resp, wrapUntyped(err, domain.ErrInternal)

	default:
		return nil, domain.ErrUnknownAction
	}
}

// resolveSession maps the session-id cookie to a live store entry
// and touches it. A miss is not an error here, just absence.
func (h *Handler) resolveSession(r *http.Request) (*domain.Session, bool) {
	cookie, err := r.Cookie(CookieSessionID)
	if err != nil || cookie.Value == "" {
		return nil, false
	}
	entity, err := h.sessions.Resolve(cookie.Value)
	if err != nil {
		return nil, false
	}
	h.sessions.Touch(cookie.Value)
	return entity, true
}

// wrapUntyped leaves typed domain errors alone and hides everything
// else behind the given sentinel.
func wrapUntyped(err error, fallback *domain.DomainError) error {
	if err == nil {
		return nil
	}
	var de *domain.DomainError
	if errors.As(err, &de) {
		return err
	}
	return fallback.WithCause(err)
}

// statusForError maps a domain error code to its HTTP status. The
// first three digits of the numeric code suffix carry the status
// class. Anything unrecognized is a 500.
func statusForError(err error) int {
	code := domain.GetErrorCode(err)
	if i := len(code) - 4; i > 0 {
		if status, convErr := strconv.Atoi(code[i : i+3]); convErr == nil && status >= 400 && status < 600 {
			return status
		}
	}
	return http.StatusInternalServerError
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("response encoding failed", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	resp := ErrorResponse{
		Code:    domain.ErrInternal.Code,
		Message: domain.ErrInternal.Message,
	}
	var de *domain.DomainError
	if errors.As(err, &de) {
		resp.Code = de.Code
		resp.Message = de.Message
	}
	h.writeJSON(w, status, resp)
}
