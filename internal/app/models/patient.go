package models

import "time"

type Patient struct {
	ID        string    `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    string    `bson:"userId" json:"user_id"`
	Pseudonym string    `bson:"pseudonym" json:"pseudonym"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
}
