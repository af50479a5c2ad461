// Package view превращает готовые данные страниц в HTML.
// Функции рендеринга не ходят в хранилище и не знают про HTTP:
// обработчики собирают структуру страницы, view только размечает ее.
package view

import (
	"html/template"
	"io"
	"time"
)

// LoginPage содержит данные страницы входа
type LoginPage struct {
	Error string
}

// RegisterPage содержит данные страницы регистрации
type RegisterPage struct {
	Error    string
	Username string // Сохраняем введенное имя при повторном показе формы
}

// Volunteer представляет волонтера в списке задачи
type Volunteer struct {
	ID       string
	Username string
}

// TaskItem представляет задачу на дашборде
type TaskItem struct {
	ID          string
	Title       string
	Description string
	Completed   bool
	Volunteers  []Volunteer
}

// StatsLine содержит счетчики для блока статистики
type StatsLine struct {
	ActiveTasks      int
	VolunteerSlots   int
	UniqueVolunteers int
	UpdatedAt        time.Time
}

// DashboardPage содержит все данные страницы задач
type DashboardPage struct {
	Username    string
	Owned       []TaskItem
	Open        []TaskItem
	Volunteered []TaskItem
	Stats       StatsLine
	Error       string
}

// ErrorPage содержит данные общей страницы ошибки
type ErrorPage struct {
	Message string
}

var pages = template.Must(template.New("pages").Parse(pageTemplates))

// Landing рендерит главную страницу
func Landing(w io.Writer) error {
	return pages.ExecuteTemplate(w, "landing", nil)
}

// Login рендерит страницу входа
func Login(w io.Writer, data LoginPage) error {
	return pages.ExecuteTemplate(w, "login", data)
}

// Register рендерит страницу регистрации
func Register(w io.Writer, data RegisterPage) error {
	return pages.ExecuteTemplate(w, "register", data)
}

// Dashboard рендерит страницу задач
func Dashboard(w io.Writer, data DashboardPage) error {
	return pages.ExecuteTemplate(w, "dashboard", data)
}

// Error рендерит общую страницу ошибки
func Error(w io.Writer, data ErrorPage) error {
	return pages.ExecuteTemplate(w, "error", data)
}
