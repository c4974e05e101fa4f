package domain

const LevelAdmin = 1

type User struct {
	ID           int64
	Name         string
	Email        string
	PhoneNumber  string
	Username     string
	Level        int
	ImageProfile string
	Address      string
}

func (u User) IsAdmin() bool {
	return u.Level == LevelAdmin
}

// Login is what the API hands back for valid credentials. Token is opaque
// and forwarded verbatim on later calls.
type Login struct {
	Token string
	User  User
}

type RegisterForm struct {
	Email       string
	FullName    string
	Password    string
	PhoneNumber string
	Username    string
	Level       int
}

type ProfileUpdate struct {
	Address  string
	Image    []byte
	Filename string
}
