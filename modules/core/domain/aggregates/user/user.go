package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a member of the service desk's user directory. The asset import
// pipeline only ever looks users up; accounts are provisioned elsewhere.
type User struct {
	id        uuid.UUID
	email     string
	username  string
	firstName string
	lastName  string
	createdAt time.Time
	updatedAt time.Time
}

func New(email, username, firstName, lastName string) User {
	return User{
		id:        uuid.New(),
		email:     strings.TrimSpace(email),
		username:  strings.TrimSpace(username),
		firstName: strings.TrimSpace(firstName),
		lastName:  strings.TrimSpace(lastName),
	}
}

func Hydrate(
	id uuid.UUID,
	email string,
	username string,
	firstName string,
	lastName string,
	createdAt time.Time,
	updatedAt time.Time,
) User {
	return User{
		id:        id,
		email:     strings.TrimSpace(email),
		username:  strings.TrimSpace(username),
		firstName: strings.TrimSpace(firstName),
		lastName:  strings.TrimSpace(lastName),
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (u User) ID() uuid.UUID        { return u.id }
func (u User) Email() string        { return u.email }
func (u User) Username() string     { return u.username }
func (u User) FirstName() string    { return u.firstName }
func (u User) LastName() string     { return u.lastName }
func (u User) CreatedAt() time.Time { return u.createdAt }
func (u User) UpdatedAt() time.Time { return u.updatedAt }
func (u User) IsZero() bool         { return u.id == uuid.Nil }

func (u User) FullName() string {
	return strings.TrimSpace(u.firstName + " " + u.lastName)
}
