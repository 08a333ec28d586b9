package auth

import "encoding/json"

// Identity is the authenticated admin for a single request. Only the gate
// builds one, so IsAdmin and Verified are always true.
type Identity struct {
	email   string
	name    string
	picture string
}

// NewIdentity builds an identity with a normalized email.
func NewIdentity(email, name, picture string) Identity {
	return Identity{email: NormalizeEmail(email), name: name, picture: picture}
}

func (i Identity) Email() string   { return i.email }
func (i Identity) Name() string    { return i.name }
func (i Identity) Picture() string { return i.picture }
func (i Identity) IsAdmin() bool   { return i.email != "" }
func (i Identity) Verified() bool  { return i.email != "" }

type identityJSON struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Picture  string `json:"picture"`
	IsAdmin  bool   `json:"is_admin"`
	Verified bool   `json:"verified"`
}

func (i Identity) MarshalJSON() ([]byte, error) {
	return json.Marshal(identityJSON{
		Email:    i.email,
		Name:     i.name,
		Picture:  i.picture,
		IsAdmin:  i.IsAdmin(),
		Verified: i.Verified(),
	})
}
