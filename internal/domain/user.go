package domain

// UserIdentity is the upstream platform account resolved from a session
// cookie.
type UserIdentity struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}
