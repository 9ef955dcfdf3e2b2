package hash

import "golang.org/x/crypto/bcrypt"

const DefaultCost = 10

// Bcrypt hashes user passwords. The zero value uses DefaultCost.
type Bcrypt struct {
	Cost int
}

func (b Bcrypt) Hash(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = DefaultCost
	}
	hashbytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashbytes), nil
}

func (b Bcrypt) Compare(hash, password string) bool {
	return CheckPassword(hash, password)
}

func HashPassword(password string) (string, error) {
	return Bcrypt{}.Hash(password)
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
