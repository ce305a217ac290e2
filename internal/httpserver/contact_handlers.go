package httpserver

import (
	"encoding/json"
	"net/http"

	"hoppon-server/internal/service"
	"hoppon-server/internal/ws"
)

func handleListContacts(contactSvc *service.ContactService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)

		contacts, err := contactSvc.Contacts(r.Context(), user.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"contacts": contacts})
	}
}

func handleContactRequest(contactSvc *service.ContactService, broadcaster *ws.Broadcaster) http.HandlerFunc {
	type request struct {
		Username string `json:"username"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "username is required"})
			return
		}

		targetID, err := contactSvc.Request(r.Context(), user.ID, req.Username)
		if err != nil {
			writeError(w, err)
			return
		}
		broadcaster.FriendRequest(targetID)
		writeJSON(w, http.StatusOK, map[string]string{"message": "friend request sent"})
	}
}

func handleListContactRequests(contactSvc *service.ContactService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)

		requests, err := contactSvc.PendingRequests(r.Context(), user.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"requests": requests})
	}
}

func handleAcceptContact(contactSvc *service.ContactService, broadcaster *ws.Broadcaster) http.HandlerFunc {
	type request struct {
		UserID int64 `json:"userId"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "userId is required"})
			return
		}

		if err := contactSvc.Accept(r.Context(), user.ID, req.UserID); err != nil {
			writeError(w, err)
			return
		}
		broadcaster.ContactListUpdated(req.UserID, user.ID)
		writeJSON(w, http.StatusOK, map[string]string{"message": "friend request accepted"})
	}
}

func handleRejectContact(contactSvc *service.ContactService) http.HandlerFunc {
	type request struct {
		UserID int64 `json:"userId"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "userId is required"})
			return
		}

		if err := contactSvc.Reject(r.Context(), user.ID, req.UserID); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "friend request rejected"})
	}
}
