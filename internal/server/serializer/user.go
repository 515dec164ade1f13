package serializer

import "github.com/mdouchement/pantry/internal/model"

// User serializes the render of a user.
func User(m *model.User) map[string]any {
	return map[string]any{
		"id":         m.ID,
		"email":      m.Email,
		"created_at": m.CreatedAt.UTC(),
	}
}
