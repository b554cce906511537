package model

// User is the authenticated user as the front-end sees it.
type User struct {
	Username      string `json:"username"`
	SecurityLevel string `json:"security_level"`
}
