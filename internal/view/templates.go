package view

// Разметка всех страниц. Стили намеренно минимальны:
// сервис отдает семантический HTML, без клиентского кода.
const pageTemplates = `
{{define "head"}}
<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.}} - Task Manager</title>
<style>
body { font-family: Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; background-color: #2F4454; color: #fff; }
h1, h2 { text-align: center; }
form.inline { display: inline; }
.card { background-color: #376E6F; border-radius: 5px; padding: 15px; margin-bottom: 10px; }
.error { color: #ff6b6b; }
.done { text-decoration: line-through; }
input { padding: 6px; margin-bottom: 10px; }
button, .btn { background-color: #4CAF50; color: white; padding: 6px 12px; border: none; cursor: pointer; text-decoration: none; }
a { color: #4CAF50; }
</style>
</head>
<body>
{{end}}

{{define "foot"}}
</body>
</html>
{{end}}

{{define "landing"}}
{{template "head" "Welcome"}}
<h1>Welcome to Task Manager</h1>
<p style="text-align: center;">Manage your tasks and volunteer to help others</p>
<div class="card">
  <h2>New User?</h2>
  <p><a class="btn" href="/register">Register</a></p>
</div>
<div class="card">
  <h2>Returning User?</h2>
  <p><a class="btn" href="/login">Login</a></p>
</div>
{{template "foot"}}
{{end}}

{{define "login"}}
{{template "head" "Login"}}
<h1>Login</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form action="/login" method="POST" class="card">
  <div><label for="username">Username:</label><br><input type="text" id="username" name="username" required></div>
  <div><label for="password">Password:</label><br><input type="password" id="password" name="password" required></div>
  <button type="submit">Login</button>
</form>
<p>Don't have an account? <a href="/register">Register</a></p>
<p><a href="/">Back to Home</a></p>
{{template "foot"}}
{{end}}

{{define "register"}}
{{template "head" "Register"}}
<h1>Register</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form action="/register" method="POST" class="card">
  <div><label for="username">Username:</label><br><input type="text" id="username" name="username" value="{{.Username}}" required></div>
  <div><label for="password">Password:</label><br><input type="password" id="password" name="password" required></div>
  <div><label for="confirm_password">Confirm password:</label><br><input type="password" id="confirm_password" name="confirm_password" required></div>
  <button type="submit">Register</button>
</form>
<p>Already have an account? <a href="/login">Login</a></p>
<p><a href="/">Back to Home</a></p>
{{template "foot"}}
{{end}}

{{define "task"}}
<div class="card">
  <h3{{if .Completed}} class="done"{{end}}>{{.Title}}</h3>
  <p>{{.Description}}</p>
  {{if .Volunteers}}
  <p>Volunteers:
    {{range .Volunteers}}
    <span>{{.Username}}</span>
    {{end}}
  </p>
  {{end}}
</div>
{{end}}

{{define "dashboard"}}
{{template "head" "Tasks"}}
<h1>Tasks</h1>
<p>Signed in as <strong>{{.Username}}</strong> — <a href="/logout">Logout</a></p>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}

<div class="card">
  <h2>Community stats</h2>
  <p>Active tasks: {{.Stats.ActiveTasks}} |
     Volunteer slots filled: {{.Stats.VolunteerSlots}} |
     Unique volunteers: {{.Stats.UniqueVolunteers}}</p>
</div>

<h2>My tasks</h2>
{{range $task := .Owned}}
<div class="card">
  <h3{{if $task.Completed}} class="done"{{end}}>{{$task.Title}}</h3>
  <p>{{$task.Description}}</p>
  {{if $task.Volunteers}}
  <p>Volunteers:
    {{range $task.Volunteers}}
    <span>{{.Username}}</span>
    <form class="inline" action="/remove-volunteer/{{$task.ID}}/{{.ID}}" method="POST"><button type="submit">Remove</button></form>
    {{end}}
  </p>
  {{end}}
  <form class="inline" action="/toggle-task/{{$task.ID}}" method="POST">
    <button type="submit">{{if $task.Completed}}Mark active{{else}}Mark done{{end}}</button>
  </form>
  <form class="inline" action="/delete-task/{{$task.ID}}" method="POST">
    <button type="submit">Delete</button>
  </form>
</div>
{{else}}
<p>No tasks yet.</p>
{{end}}

<h2>Add a task</h2>
<form action="/add-task" method="POST" class="card">
  <div><label for="title">Title:</label><br><input type="text" id="title" name="title" required></div>
  <div><label for="description">Description:</label><br><input type="text" id="description" name="description" required></div>
  <button type="submit">Add task</button>
</form>

<h2>Tasks needing volunteers</h2>
{{range .Open}}
<div class="card">
  <h3>{{.Title}}</h3>
  <p>{{.Description}}</p>
  <form class="inline" action="/volunteer/{{.ID}}" method="POST">
    <button type="submit">Volunteer</button>
  </form>
</div>
{{else}}
<p>Nothing to volunteer for right now.</p>
{{end}}

<h2>Tasks I volunteered for</h2>
{{range .Volunteered}}
{{template "task" .}}
{{else}}
<p>You have not volunteered for any tasks.</p>
{{end}}
{{template "foot"}}
{{end}}

{{define "error"}}
{{template "head" "Error"}}
<h1>Something went wrong</h1>
<p class="error">{{.Message}}</p>
<p><a href="/tasks">Back to tasks</a></p>
{{template "foot"}}
{{end}}
`
