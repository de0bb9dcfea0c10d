// Package subscription provides HTTP handlers for newsletter signup,
// unsubscribe, and the admin subscriber list.
package subscription

import "time"

// subscribeRequest is the JSON body for POST /subscribe.
type subscribeRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// unsubscribeRequest is the JSON body for POST /unsubscribe.
type unsubscribeRequest struct {
	Email string `json:"email"`
}

// messageResponse carries a user-facing success message.
type messageResponse struct {
	Message string `json:"message"`
}

// errorResponse carries a user-facing error message.
type errorResponse struct {
	Error string `json:"error"`
}

// SubscriberDTO represents one subscriber row in the admin list.
type SubscriberDTO struct {
	Row          int       `json:"row"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribed_at"`
	Status       string    `json:"status"`
}
