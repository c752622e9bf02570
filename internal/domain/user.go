package domain

// User is an account row. The password column holds a bcrypt hash and is
// never serialized into responses.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
}
