package handlers

import (
	"github.com/google/uuid"
)

// ParseID проверяет, что строка является UUID, и возвращает её в каноническом виде
func ParseID(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
