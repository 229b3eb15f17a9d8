// Package session persists the signed-in user between CLI invocations.
package session

import (
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
	"github.com/felixgeelhaar/eventboard/internal/shared/infrastructure/crypto"
)

// record is the stored form of a session. Access codes are never stored.
type record struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// codec turns a user into bytes and back, sealing them when a key is set.
type codec struct {
	sealer crypto.Sealer
}

func (c codec) encode(user domain.User) ([]byte, error) {
	data, err := json.Marshal(record{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role})
	if err != nil {
		return nil, err
	}
	if c.sealer == nil {
		return data, nil
	}
	return c.sealer.Seal(data)
}

func (c codec) decode(data []byte) (domain.User, error) {
	if c.sealer != nil {
		opened, err := c.sealer.Open(data)
		if err != nil {
			return domain.User{}, fmt.Errorf("open stored session: %w", err)
		}
		data = opened
	}

	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return domain.User{}, fmt.Errorf("decode stored session: %w", err)
	}
	if !r.Role.IsValid() {
		return domain.User{}, fmt.Errorf("decode stored session: unknown role %q", r.Role)
	}
	return domain.User{ID: r.ID, Name: r.Name, Email: r.Email, Role: r.Role}, nil
}
