package integration

import (
	"encoding/json"
	"net/http"
	"net/url"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Тестовые структуры данных соответствующие JSON API
type StatsResponse struct {
	ActiveTaskCount      int `json:"active_task_count"`
	TotalVolunteerSlots  int `json:"total_volunteer_slots"`
	UniqueVolunteerCount int `json:"unique_volunteer_count"`
}

type TaskResponse struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	OwnerID    string   `json:"owner_id"`
	Completed  bool     `json:"completed"`
	Volunteers []string `json:"volunteers"`
}

type TasksResponse struct {
	Owned       []TaskResponse `json:"owned"`
	Open        []TaskResponse `json:"open"`
	Volunteered []TaskResponse `json:"volunteered"`
}

var toggleFormRe = regexp.MustCompile(`action="/toggle-task/([0-9a-f-]+)"`)

// TestE2E_CompleteWorkflow тестирует полный workflow сервиса задач
func TestE2E_CompleteWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	// Настраиваем тестовое окружение
	env := SetupTestEnvironment(t)
	defer env.Cleanup(t)

	// Ждем пока приложение будет готово
	env.WaitForHealthCheck(t)

	alice := env.NewBrowser(t)
	bob := env.NewBrowser(t)

	var taskID string
	var bobID string

	t.Run("Landing Page", func(t *testing.T) {
		resp := env.Get(t, env.NewRawClient(), "/")
		body := ReadBody(t, resp)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "Welcome to Task Manager")
	})

	t.Run("Register Alice", func(t *testing.T) {
		resp := env.PostForm(t, alice, "/register", url.Values{
			"username":         {"alice"},
			"password":         {"secret123"},
			"confirm_password": {"secret123"},
		})
		body := ReadBody(t, resp)

		require.Equal(t, http.StatusOK, resp.StatusCode, "Registration should land on the dashboard")
		assert.Contains(t, body, "Signed in as <strong>alice</strong>")
	})

	t.Run("Duplicate Username Rejected", func(t *testing.T) {
		resp := env.PostForm(t, env.NewBrowser(t), "/register", url.Values{
			"username":         {"alice"},
			"password":         {"other-pass"},
			"confirm_password": {"other-pass"},
		})
		body := ReadBody(t, resp)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Contains(t, body, "This username is already taken")
	})

	t.Run("Password Mismatch Rejected", func(t *testing.T) {
		resp := env.PostForm(t, env.NewBrowser(t), "/register", url.Values{
			"username":         {"mallory"},
			"password":         {"one"},
			"confirm_password": {"two"},
		})
		body := ReadBody(t, resp)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body, "Passwords do not match")
	})

	t.Run("Login With Wrong Password", func(t *testing.T) {
		resp := env.PostForm(t, env.NewBrowser(t), "/login", url.Values{
			"username": {"alice"},
			"password": {"wrong"},
		})
		body := ReadBody(t, resp)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, body, "Invalid username or password")
	})

	t.Run("Dashboard Requires Session", func(t *testing.T) {
		resp := env.Get(t, env.NewRawClient(), "/tasks")
		resp.Body.Close()

		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	})

	t.Run("Alice Creates Task", func(t *testing.T) {
		resp := env.PostForm(t, alice, "/add-task", url.Values{
			"title":       {"Clean"},
			"description": {"Clean the office"},
		})
		body := ReadBody(t, resp)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "Clean the office")

		matches := toggleFormRe.FindStringSubmatch(body)
		require.Len(t, matches, 2, "Dashboard should contain the toggle form with the task id")
		taskID = matches[1]
	})

	t.Run("Empty Task Rejected", func(t *testing.T) {
		resp := env.PostForm(t, alice, "/add-task", url.Values{
			"title":       {""},
			"description": {"No title"},
		})
		body := ReadBody(t, resp)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body, "Title and description are required")
	})

	t.Run("Bob Registers And Sees The Task", func(t *testing.T) {
		resp := env.PostForm(t, bob, "/register", url.Values{
			"username":         {"bob"},
			"password":         {"hunter2hunter2"},
			"confirm_password": {"hunter2hunter2"},
		})
		body := ReadBody(t, resp)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "Clean the office")
		assert.Contains(t, body, `action="/volunteer/`+taskID+`"`)
	})

	t.Run("Bob Volunteers", func(t *testing.T) {
		resp := env.PostForm(t, bob, "/volunteer/"+taskID, url.Values{})
		body := ReadBody(t, resp)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotContains(t, body, `action="/volunteer/`+taskID+`"`,
			"Task must leave bob's open list once he volunteered")

		// Дашборд alice показывает волонтера
		aliceResp := env.Get(t, alice, "/tasks")
		aliceBody := ReadBody(t, aliceResp)
		assert.Contains(t, aliceBody, "bob")
		assert.Contains(t, aliceBody, `action="/remove-volunteer/`+taskID+`/`)
	})

	t.Run("Volunteering Is Idempotent", func(t *testing.T) {
		resp := env.PostForm(t, bob, "/volunteer/"+taskID, url.Values{})
		ReadBody(t, resp)

		var count int
		err := env.DB.QueryRow(env.ctx,
			"SELECT COUNT(*) FROM task_volunteers WHERE task_id = $1", taskID,
		).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "Second volunteer call must not add a row")
	})

	t.Run("Self Volunteering Rejected", func(t *testing.T) {
		resp := env.PostForm(t, alice, "/volunteer/"+taskID, url.Values{})
		body := ReadBody(t, resp)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body, "You cannot volunteer for your own task")

		var count int
		err := env.DB.QueryRow(env.ctx,
			"SELECT COUNT(*) FROM task_volunteers WHERE task_id = $1", taskID,
		).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "Owner must never join the volunteer list")
	})

	t.Run("Stats After Volunteering", func(t *testing.T) {
		resp := env.Get(t, bob, "/api/stats")
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var stats StatsResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
		assert.Equal(t, 1, stats.ActiveTaskCount)
		assert.Equal(t, 1, stats.TotalVolunteerSlots)
		assert.Equal(t, 1, stats.UniqueVolunteerCount)
	})

	t.Run("Only Owner Can Toggle", func(t *testing.T) {
		resp := env.PostForm(t, bob, "/toggle-task/"+taskID, url.Values{})
		body := ReadBody(t, resp)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Contains(t, body, "Only the task owner can do that")
	})

	t.Run("Alice Completes Task", func(t *testing.T) {
		resp := env.PostForm(t, alice, "/toggle-task/"+taskID, url.Values{})
		ReadBody(t, resp)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		// Все задачи завершены: счетчики обнуляются
		statsResp := env.Get(t, alice, "/api/stats")
		defer statsResp.Body.Close()

		var stats StatsResponse
		require.NoError(t, json.NewDecoder(statsResp.Body).Decode(&stats))
		assert.Zero(t, stats.ActiveTaskCount)
		assert.Zero(t, stats.TotalVolunteerSlots)
		assert.Zero(t, stats.UniqueVolunteerCount)

		// Завершенная задача остается в списке волонтера
		tasksResp := env.Get(t, bob, "/api/tasks")
		defer tasksResp.Body.Close()

		var tasks TasksResponse
		require.NoError(t, json.NewDecoder(tasksResp.Body).Decode(&tasks))
		require.Len(t, tasks.Volunteered, 1)
		assert.True(t, tasks.Volunteered[0].Completed)

		bobID = tasks.Volunteered[0].Volunteers[0]
	})

	t.Run("Owner Removes Volunteer", func(t *testing.T) {
		resp := env.PostForm(t, alice, "/remove-volunteer/"+taskID+"/"+bobID, url.Values{})
		ReadBody(t, resp)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		tasksResp := env.Get(t, alice, "/api/tasks")
		defer tasksResp.Body.Close()

		var tasks TasksResponse
		require.NoError(t, json.NewDecoder(tasksResp.Body).Decode(&tasks))
		require.Len(t, tasks.Owned, 1)
		assert.Empty(t, tasks.Owned[0].Volunteers)
	})

	t.Run("Alice Deletes Task", func(t *testing.T) {
		resp := env.PostForm(t, alice, "/delete-task/"+taskID, url.Values{})
		ReadBody(t, resp)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var count int
		err := env.DB.QueryRow(env.ctx, "SELECT COUNT(*) FROM tasks").Scan(&count)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("API Requires Session", func(t *testing.T) {
		resp := env.Get(t, env.NewRawClient(), "/api/stats")
		body := ReadBody(t, resp)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, body, "UNAUTHORIZED")
	})

	t.Run("Logout", func(t *testing.T) {
		resp := env.Get(t, alice, "/logout")
		body := ReadBody(t, resp)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "Welcome to Task Manager")

		// После выхода дашборд снова недоступен
		dashResp := env.Get(t, alice, "/tasks")
		dashBody := ReadBody(t, dashResp)
		assert.Contains(t, dashBody, `action="/login"`)
	})
}
