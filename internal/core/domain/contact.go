package domain

import "time"

// MessageStatus tracks whether the site owner has read a contact message.
type MessageStatus string

const (
	MessageUnread MessageStatus = "unread"
	MessageRead   MessageStatus = "read"
)

// DefaultSubject is used when a contact form omits the subject line.
const DefaultSubject = "General Inquiry"

func (s MessageStatus) Valid() bool {
	return s == MessageUnread || s == MessageRead
}

// ContactMessage is a submission from the public contact form.
type ContactMessage struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Subject   string        `json:"subject"`
	Message   string        `json:"message"`
	Status    MessageStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}
