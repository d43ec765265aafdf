package registry

import (
	"encoding/json"
	"fmt"

	"github.com/BuiltByShivam/smart-inventory/internal/client/models"
)

// storedUser is the persisted shape. Every field but the username is
// optional, and the password may appear under the legacy "pw" key.
type storedUser struct {
	Username         string  `json:"username"`
	Password         *string `json:"password,omitempty"`
	PW               *string `json:"pw,omitempty"`
	Role             *string `json:"role,omitempty"`
	Enabled          *bool   `json:"enabled,omitempty"`
	SecurityQuestion *string `json:"securityQuestion,omitempty"`
	SecurityAnswer   *string `json:"securityAnswer,omitempty"`
}

// defaults fills fields absent from a stored record that has no built-in
// counterpart.
var defaults = models.User{
	Password:         "",
	Role:             models.RoleUser,
	Enabled:          true,
	SecurityQuestion: "Custom question",
	SecurityAnswer:   "",
}

var builtins = []models.User{
	{
		Username:         "admin",
		Password:         "admin",
		Role:             models.RoleAdmin,
		Enabled:          true,
		SecurityQuestion: "What is your mother's maiden name?",
		SecurityAnswer:   "admin",
		BuiltIn:          true,
	},
	{
		Username:         "user",
		Password:         "user",
		Role:             models.RoleUser,
		Enabled:          true,
		SecurityQuestion: "What city were you born in?",
		SecurityAnswer:   "user",
		BuiltIn:          true,
	},
}

func builtin(username string) (models.User, bool) {
	for _, b := range builtins {
		if b.Username == username {
			return b, true
		}
	}
	return models.User{}, false
}

// normalize turns a stored record into a User. Absent fields take their
// value from base: the built-in record of the same name, or defaults.
func normalize(s storedUser) models.User {
	u, ok := builtin(s.Username)
	if !ok {
		u = defaults
	}
	u.Username = s.Username

	switch {
	case s.Password != nil && *s.Password != "":
		u.Password = *s.Password
	case s.PW != nil && *s.PW != "":
		u.Password = *s.PW
	}
	if s.Role != nil && models.ValidRole(*s.Role) {
		u.Role = *s.Role
	}
	if s.Enabled != nil {
		u.Enabled = *s.Enabled
	}
	if s.SecurityQuestion != nil && *s.SecurityQuestion != "" {
		u.SecurityQuestion = *s.SecurityQuestion
	}
	if s.SecurityAnswer != nil {
		u.SecurityAnswer = *s.SecurityAnswer
	}
	return u
}

func denormalize(u models.User) storedUser {
	return storedUser{
		Username:         u.Username,
		Password:         &u.Password,
		Role:             &u.Role,
		Enabled:          &u.Enabled,
		SecurityQuestion: &u.SecurityQuestion,
		SecurityAnswer:   &u.SecurityAnswer,
	}
}

// decode parses the persisted array. Records without a username are skipped;
// a later record for the same username replaces an earlier one.
func decode(raw []byte) ([]models.User, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var stored []storedUser
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	out := make([]models.User, 0, len(stored))
	index := make(map[string]int, len(stored))
	for _, s := range stored {
		if s.Username == "" {
			continue
		}
		u := normalize(s)
		if i, ok := index[u.Username]; ok {
			out[i] = u
			continue
		}
		index[u.Username] = len(out)
		out = append(out, u)
	}
	return out, nil
}

// encode persists every non-built-in record, and a built-in record only when
// it differs from its hardcoded values.
func encode(users []models.User) ([]byte, error) {
	stored := make([]storedUser, 0, len(users))
	for _, u := range users {
		if b, ok := builtin(u.Username); ok {
			u.BuiltIn = true
			if u == b {
				continue
			}
		}
		stored = append(stored, denormalize(u))
	}
	return json.Marshal(stored)
}
