package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hoppon-server/internal/domain"
	"hoppon-server/internal/metrics"
	"hoppon-server/internal/service"
	"hoppon-server/internal/ws"
)

func handleCreateMessage(msgSvc *service.MessageService, hub *ws.Hub) http.HandlerFunc {
	type request struct {
		ConversationID int64  `json:"conversationId"`
		Content        string `json:"content"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid JSON body"})
			return
		}
		if req.ConversationID == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "conversationId is required"})
			return
		}

		rec, participantIDs, err := msgSvc.Send(r.Context(), user.ID, req.ConversationID, req.Content)
		if err != nil {
			writeError(w, err)
			return
		}

		// Same fan-out as the socket path, so REST-submitted messages reach
		// connected participants immediately.
		delivered := hub.PushToUsers(participantIDs, ws.NewMessageEvent(rec))
		metrics.MessagesDelivered.Add(float64(delivered))

		writeJSON(w, http.StatusCreated, map[string]any{
			"messageId": rec.ID,
			"timestamp": rec.CreatedAt,
		})
	}
}

func handleListMessages(msgSvc *service.MessageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)

		conversationID, err := strconv.ParseInt(chi.URLParam(r, "conversationID"), 10, 64)
		if err != nil {
			writeError(w, domain.ErrInvalidInput)
			return
		}

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		msgs, err := msgSvc.History(r.Context(), user.ID, conversationID, page, limit)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"messages": msgs})
	}
}
