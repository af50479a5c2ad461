package domain

import "time"

// GlobalStatsName это ключ единственной строки с глобальной статистикой
const GlobalStatsName = "global"

// StatsSnapshot представляет производные счетчики по всем задачам.
// Снимок не является источником истины: он целиком пересчитывается
// из хранилища задач после каждой мутации.
type StatsSnapshot struct {
	ActiveTaskCount      int       `json:"active_task_count"`      // Незавершенные задачи
	TotalVolunteerSlots  int       `json:"total_volunteer_slots"`  // Сумма волонтеров по активным задачам
	UniqueVolunteerCount int       `json:"unique_volunteer_count"` // Уникальные волонтеры активных задач
	UpdatedAt            time.Time `json:"updated_at"`
}
