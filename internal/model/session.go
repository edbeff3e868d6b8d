package model

// Session is the opaque credential supplied by the auth collaborator. The
// engine never interprets Token beyond forwarding it as a bearer credential.
type Session struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}
