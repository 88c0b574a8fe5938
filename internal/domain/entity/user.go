package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the aggregate root for the user domain.
// PasswordHash holds a bcrypt hash and is never serialized in API responses.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	FirstName    string             `bson:"firstName" json:"firstName"`
	LastName     string             `bson:"lastName" json:"lastName"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"pswHash" json:"-"`
	Avatar       string             `bson:"avatar" json:"avatar"`
	DateOfBirth  string             `bson:"dateOfBirth" json:"dateOfBirth"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// FullName joins first and last name the way author names are displayed.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
