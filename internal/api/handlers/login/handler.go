package login

import (
	"errors"
	"net/http"
	"time"

	"github.com/agendei/agenda-service/internal/api/handlers"
	"github.com/agendei/agenda-service/internal/api/middleware"
	"github.com/agendei/agenda-service/internal/service/session"
)

const (
	msgProfileNotFound   = "perfil não encontrado"
	msgResolutionTimeout = "não foi possível identificar o usuário, tente novamente"
)

// SessionResponse HTTP response model
type SessionResponse struct {
	ProfileID       string  `json:"profileId"`
	Name            string  `json:"name"`
	Role            string  `json:"role"`
	EstablishmentID *string `json:"establishmentId,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

type Handler struct {
	sessions SessionManager
	logger   Logger
}

func NewHandler(sessions SessionManager, logger Logger) *Handler {
	return &Handler{
		sessions: sessions,
		logger:   logger,
	}
}

// Handle POST /api/v1/session
//
// Разрешение личности ограничено по времени на стороне клиента
// ProfileService; по истечении возвращается 504 с предложением повторить
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "cabeçalho X-User-ID ausente")
		return
	}

	sess, err := h.sessions.Login(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrResolutionTimeout):
			h.logger.Warn("POST /session - Resolution timeout for user=%s", userID)
			handlers.RespondError(w, http.StatusGatewayTimeout, msgResolutionTimeout)

		case errors.Is(err, session.ErrProfileNotFound):
			h.logger.Warn("POST /session - Profile not found: %s", userID)
			handlers.RespondNotFound(w, msgProfileNotFound)

		default:
			h.logger.Error("POST /session - Login failed for user=%s: %v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	resp := SessionResponse{
		ProfileID: sess.Profile.ID.String(),
		Name:      sess.Profile.Name,
		Role:      sess.Profile.Role,
		CreatedAt: sess.CreatedAt.Format(time.RFC3339),
	}
	if sess.Profile.EstablishmentID != nil {
		s := sess.Profile.EstablishmentID.String()
		resp.EstablishmentID = &s
	}

	h.logger.Info("POST /session - Session created for user=%s", userID)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}
