package model

type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Location string `json:"location"`
}

type GenerateOptions struct {
	AddContextFromInternet bool `json:"add_context_from_internet"`
}

// Session is the authenticated caller, threaded explicitly into every service call.
type Session struct {
	Email    string
	FullName string
	Location string
	Token    string
}

// UserEmail is nil-safe; anonymous callers have no email.
func (s *Session) UserEmail() string {
	if s == nil {
		return ""
	}
	return s.Email
}
