package domain

import "time"

// Rating bounds for reviews.
const (
	MinRating = 1
	MaxRating = 5
)

// ReviewUser is the author projection embedded in a review.
type ReviewUser struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// Review is a user's rating and comment on a book.
// A user may review the same book more than once.
type Review struct {
	ID        string     `json:"_id"`
	User      ReviewUser `json:"user"`
	Book      Book       `json:"book"`
	Rating    int        `json:"rating"`
	Comment   string     `json:"comment"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ReviewerOf builds the review projection of u.
func ReviewerOf(u *User) ReviewUser {
	return ReviewUser{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
}
