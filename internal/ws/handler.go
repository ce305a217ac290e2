package ws

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"hoppon-server/internal/domain"
	"hoppon-server/internal/metrics"
	"hoppon-server/internal/security"
	"hoppon-server/internal/service"
)

func normalizeAllowedOrigins(origins []string) map[string]struct{} {
	res := make(map[string]struct{}, len(origins))
	for _, origin := range origins {
		o := strings.TrimSpace(strings.ToLower(origin))
		if o != "" {
			res[o] = struct{}{}
		}
	}
	return res
}

func makeCheckOrigin(allowedOrigins []string) func(r *http.Request) bool {
	allowed := normalizeAllowedOrigins(allowedOrigins)

	return func(r *http.Request) bool {
		origin := strings.TrimSpace(strings.ToLower(r.Header.Get("Origin")))
		if origin == "" {
			// non-browser client
			return true
		}
		if len(allowed) == 0 {
			return true
		}
		if _, ok := allowed[origin]; ok {
			return true
		}

		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return false
		}
		_, ok := allowed[strings.ToLower(u.Scheme+"://"+u.Host)]
		return ok
	}
}

// coerceID converts a loosely typed JSON value to an integer identifier.
// Numbers arrive as float64 from the JSON decoder; clients may also send
// numeric strings.
func coerceID(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		id := int64(n)
		if float64(id) != n {
			return 0, false
		}
		return id, true
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, false
		}
		return id, true
	default:
		return 0, false
	}
}

// NewMessageEvent builds the wire payload announcing a persisted message. The
// REST message endpoint reuses it so both intake paths emit the same shape.
func NewMessageEvent(rec *domain.MessageRecord) map[string]any {
	return map[string]any{
		"type":            "new_message",
		"id":              rec.ID,
		"conversation_id": rec.ConversationID,
		"sender_id":       rec.SenderID,
		"sender_name":     rec.SenderName,
		"content":         rec.Content,
		"created_at":      rec.CreatedAt,
	}
}

// MakeHandler returns the HTTP handler for the /ws endpoint. A connection is
// upgraded immediately and stays unauthenticated until it presents a token:
//   - authenticate             -> bind connection to the token's user; invalid token closes the connection
//   - send_message             -> validate, authorize, persist, fan out to participants
//   - friend_request_sent      -> targeted new_friend_request signal
//   - friend_request_accepted  -> contact_list_updated to requester and self
//   - avatar_updated           -> global avatar_changed signal
func MakeHandler(
	hub *Hub,
	broadcaster *Broadcaster,
	tokens *security.TokenService,
	users domain.UserRepository,
	msgSvc *service.MessageService,
	allowedOrigins []string,
) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		CheckOrigin: makeCheckOrigin(allowedOrigins),
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		// The upgrade request's context carries request-scoped deadlines and is
		// far shorter-lived than the connection; DB work over the connection's
		// life must not inherit it.
		ctx := context.Background()
		client := NewClient(conn)

		// Identity bound by a successful authenticate event. Only this
		// goroutine reads or writes it.
		var userID int64

		defer func() {
			if userID != 0 {
				hub.Unbind(userID, client)
			}
		}()

		for {
			var payload map[string]any
			if err := conn.ReadJSON(&payload); err != nil {
				break
			}
			evType, _ := payload["type"].(string)
			metrics.WSEvents.WithLabelValues(evType).Inc()

			switch evType {

			case "authenticate":
				token, _ := payload["token"].(string)
				uid, err := tokens.Parse(token)
				if err != nil {
					log.Printf("ws: authentication failed: %v", err)
					return
				}
				user, err := users.GetByID(ctx, uid)
				if err != nil || user == nil {
					log.Printf("ws: authentication failed: unknown user %d", uid)
					return
				}
				// Re-authenticating as someone else releases the old identity's
				// binding; the registry must never keep pointing a stale user at
				// this connection.
				if userID != 0 && userID != uid {
					hub.Unbind(userID, client)
				}
				if prev := hub.Bind(uid, client); prev != nil {
					// single-binding policy: the newest session wins
					prev.Close()
				}
				userID = uid

			case "send_message":
				convID, okConv := coerceID(payload["conversationId"])
				if !okConv {
					sendError(client, "Missing conversationId")
					continue
				}
				content, _ := payload["content"].(string)
				if strings.TrimSpace(content) == "" {
					sendError(client, "Missing message content")
					continue
				}
				if userID == 0 {
					sendError(client, "Authentication required")
					continue
				}
				rec, participantIDs, err := msgSvc.Send(ctx, userID, convID, content)
				if err != nil {
					switch {
					case errors.Is(err, domain.ErrForbidden):
						sendError(client, "Not authorized for this conversation")
					case errors.Is(err, domain.ErrInvalidInput):
						sendError(client, "Missing message content")
					default:
						log.Printf("ws: send_message from user %d: %v", userID, err)
						sendError(client, "Failed to process message")
					}
					continue
				}
				delivered := hub.PushToUsers(participantIDs, NewMessageEvent(rec))
				metrics.MessagesDelivered.Add(float64(delivered))

			case "friend_request_sent":
				targetID, ok := coerceID(payload["targetUserId"])
				if !ok {
					continue
				}
				broadcaster.FriendRequest(targetID)

			case "friend_request_accepted":
				requesterID, ok := coerceID(payload["requesterId"])
				if !ok {
					continue
				}
				broadcaster.ContactListUpdated(requesterID)
				_ = client.Send(map[string]any{"type": "contact_list_updated"})

			case "avatar_updated":
				uid, ok := coerceID(payload["userId"])
				if !ok {
					continue
				}
				broadcaster.AvatarChanged(uid)

			default:
				log.Printf("ws: unknown event type %q from user %d", evType, userID)
			}
		}
	}
}

func sendError(c *Client, msg string) {
	_ = c.Send(map[string]any{
		"type":    "message_error",
		"message": msg,
	})
}
