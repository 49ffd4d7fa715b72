// Package telegram is the transport: the Bot API types the webhook decodes,
// the outbound sendMessage client and the webhook HTTP server. All command
// interpretation lives in the bot package.
package telegram

// Update is the subset of a Bot API update the webhook cares about.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message"`
}

type Message struct {
	MessageID int64  `json:"message_id"`
	From      *User  `json:"from"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`
}

type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
}

type Chat struct {
	ID int64 `json:"id"`
}
