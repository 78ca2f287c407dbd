package model

import "encoding/json"

// Known credential categories.
const (
	CategoryLogin   = "Login"
	CategorySocial  = "Social"
	CategoryBanking = "Banking"
	CategoryOther   = "Other"
)

// PasswordEntry is a stored credential as exchanged with the vault API.
type PasswordEntry struct {
	ID       string `json:"id,omitempty"`
	Title    string `json:"title" validate:"required,max=256"`
	Username string `json:"username" validate:"max=256"`
	Password string `json:"password" validate:"required,min=8"`
	URL      string `json:"url,omitempty" validate:"omitempty,max=2048"`
	Category string `json:"category,omitempty"`
	Notes    string `json:"notes,omitempty"`
	Favicon  string `json:"favicon,omitempty"`
}

// UnmarshalJSON accepts the entry identifier under either "_id" or "id".
func (e *PasswordEntry) UnmarshalJSON(data []byte) error {
	type plain PasswordEntry
	aux := struct {
		*plain
		MongoID string `json:"_id"`
	}{plain: (*plain)(e)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = aux.MongoID
	}
	return nil
}
