package ws

// Broadcaster delivers transient notification signals over live connections.
// Signals carry no state beyond identifiers; clients re-fetch authoritative
// data over REST, so nothing stale is ever pushed.
type Broadcaster struct {
	hub *Hub
}

func NewBroadcaster(hub *Hub) *Broadcaster {
	return &Broadcaster{hub: hub}
}

// FriendRequest tells the target user a new friend request arrived. Dropped
// silently if the target is offline; the request itself is durable and shows
// up on the next REST fetch.
func (b *Broadcaster) FriendRequest(targetID int64) {
	b.hub.PushToUsers([]int64{targetID}, map[string]any{
		"type": "new_friend_request",
	})
}

// ContactListUpdated tells each listed user their contact list changed.
func (b *Broadcaster) ContactListUpdated(userIDs ...int64) {
	b.hub.PushToUsers(userIDs, map[string]any{
		"type": "contact_list_updated",
	})
}

// AvatarChanged tells every connected client to refresh its cached avatar for
// the given user.
func (b *Broadcaster) AvatarChanged(userID int64) {
	b.hub.BroadcastAll(map[string]any{
		"type":    "avatar_changed",
		"user_id": userID,
	})
}
