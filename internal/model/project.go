package model

// Project groups a board and its collaborators.
type Project struct {
	ID       int64
	Title    string
	Favorite bool
	Owner    bool
}

// Session is the authenticated user session used to call the remote API.
type Session struct {
	UserID      int64
	Email       string
	Token       string
	Authorities []string
}
