package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cart maps product id -> size -> quantity. It lives on the user document and
// is cleared as a side effect of a successful checkout or payment confirmation.
type Cart map[string]map[string]int

// User is an account document. Password holds the bcrypt hash and is never
// serialized to JSON.
type User struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	Password     string             `json:"-" bson:"password"`
	CartData     Cart               `json:"cartData" bson:"cartData"`
	ProfileImage string             `json:"profileImage,omitempty" bson:"profileImage,omitempty"`
}

// Profile is the public view of a user, as returned by the profile endpoints.
// It deliberately omits the password hash and cart contents.
type Profile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// ProfileOf builds the public view of a user.
func ProfileOf(u *User) *Profile {
	return &Profile{
		ID:           u.ID.Hex(),
		Name:         u.Name,
		Email:        u.Email,
		ProfileImage: u.ProfileImage,
	}
}
