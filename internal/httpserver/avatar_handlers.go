package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hoppon-server/internal/domain"
	"hoppon-server/internal/service"
	"hoppon-server/internal/ws"
)

func handleUpdateAvatar(userSvc *service.UserService, broadcaster *ws.Broadcaster) http.HandlerFunc {
	type request struct {
		ImageData string `json:"imageData"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ImageData == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "imageData is required"})
			return
		}

		if err := userSvc.UpdateAvatar(r.Context(), user.ID, req.ImageData); err != nil {
			writeError(w, err)
			return
		}
		broadcaster.AvatarChanged(user.ID)
		writeJSON(w, http.StatusOK, map[string]string{"message": "avatar updated"})
	}
}

func handleGetAvatar(userSvc *service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
		if err != nil {
			writeError(w, domain.ErrInvalidInput)
			return
		}

		data, err := userSvc.Avatar(r.Context(), userID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				writeJSON(w, http.StatusNotFound, map[string]string{"message": "no avatar"})
				return
			}
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}
