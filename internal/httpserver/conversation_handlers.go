package httpserver

import (
	"encoding/json"
	"net/http"

	"hoppon-server/internal/service"
)

func handleCreateConversation(convSvc *service.ConversationService) http.HandlerFunc {
	type request struct {
		ParticipantIDs []int64 `json:"participantIds"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid JSON body"})
			return
		}

		conv, err := convSvc.Create(r.Context(), user.ID, req.ParticipantIDs)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"conversationId": conv.ID})
	}
}

func handleListConversations(convSvc *service.ConversationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)

		convs, err := convSvc.ListForUser(r.Context(), user.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"conversations": convs})
	}
}
