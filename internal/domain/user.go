package domain

// User is a learner known to the tracker. Email is the natural key and is
// kept in its normalized (upper-case) form.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// NewUser creates a User with a normalized email.
// The ID is assigned by the store on insert.
func NewUser(email string) (*User, error) {
	user := &User{
		Email: NormalizeEmail(email),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	return validateEmail(u.Email)
}

// DisplayEmail returns the lower-case form of the user's email.
func (u *User) DisplayEmail() string {
	return DisplayEmail(u.Email)
}
