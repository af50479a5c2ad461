package domain

import "time"

// Task представляет задачу с ее списком волонтеров
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id"`
	Completed   bool      `json:"completed"`
	Volunteers  []string  `json:"volunteers"` // ID волонтеров, без дубликатов, без владельца
	CreatedAt   time.Time `json:"created_at"`
}

// IsOwnedBy возвращает true если задача принадлежит указанному пользователю
func (t *Task) IsOwnedBy(userID string) bool {
	return t.OwnerID == userID
}

// HasVolunteer проверяет, записан ли пользователь волонтером этой задачи
func (t *Task) HasVolunteer(userID string) bool {
	for _, v := range t.Volunteers {
		if v == userID {
			return true
		}
	}
	return false
}
