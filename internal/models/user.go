package models

import "time"

// User is one entry in the contact directory, keyed by Reddit username.
type User struct {
	RedditUsername string    `json:"reddit_username"`
	PayPalName     string    `json:"paypal_name"`
	DiscordName    string    `json:"discord_name"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
