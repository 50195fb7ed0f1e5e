package user

import "context"

// UserRepository is the user directory.
type UserRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByIDs(ctx context.Context, ids []int64) (map[int64]*User, error)
	FindAll(ctx context.Context) ([]*User, error)
	// Save and Update return a Conflict error when the email is taken.
	Save(ctx context.Context, user *User) (*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id int64) error
}
