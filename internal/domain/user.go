package domain

import (
	"encoding/json"
	"fmt"
)

// User is a users-api record: a numeric id plus arbitrary profile fields.
// It marshals as a single flat JSON object.
type User struct {
	ID      int64
	Profile map[string]any
}

// MarshalJSON implements json.Marshaler.
func (u User) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(u.Profile)+1)
	for k, v := range u.Profile {
		out[k] = v
	}
	out["id"] = u.ID
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (u *User) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id, ok := raw["id"].(float64)
	if !ok || id <= 0 || id != float64(int64(id)) {
		return fmt.Errorf("%w: user id must be a positive integer", ErrInvalidID)
	}
	delete(raw, "id")

	u.ID = int64(id)
	u.Profile = raw
	return nil
}
