package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/collabhub/backend/internal/models"
	"github.com/collabhub/backend/internal/services"
)

type taskTestFixture struct {
	env      testEnv
	owner    *models.User
	assignee *models.User
	member   *models.User
	project  *models.Project
	task     *models.Task
}

func setupTaskTest(t *testing.T) taskTestFixture {
	t.Helper()
	env := setupTestEnv(t)
	ctx := context.Background()

	owner := registerTestUser(t, env, "alice", "alice@example.com")
	assignee := registerTestUser(t, env, "bob", "bob@example.com")
	member := registerTestUser(t, env, "carol", "carol@example.com")
	project := createTestProject(t, env, owner.ID)

	for _, u := range []*models.User{assignee, member} {
		_, err := env.projectService.JoinByCode(ctx, project.Code, u.ID)
		require.NoError(t, err)
	}

	task, err := env.taskService.Create(ctx, services.CreateTaskInput{
		ProjectID:   project.ID,
		Name:        "write docs",
		AssigneeID:  assignee.ID,
		RequesterID: owner.ID,
	})
	require.NoError(t, err)

	return taskTestFixture{
		env:      env,
		owner:    owner,
		assignee: assignee,
		member:   member,
		project:  project,
		task:     task,
	}
}

type taskResponse struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Status     models.TaskStatus `json:"status"`
	AssigneeID string            `json:"assignee_id"`
	Assignee   *struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"assignee"`
}

func TestTaskHandler_Create(t *testing.T) {
	f := setupTaskTest(t)

	w := doRequest(t, f.env, http.MethodPost, "/projects/"+f.project.ID+"/tasks", map[string]string{
		"name":     "ship release",
		"assignee": f.assignee.ID,
		"status":   "In Progress",
	}, f.owner)

	require.Equal(t, http.StatusCreated, w.Code)

	var response taskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, models.TaskStatusInProgress, response.Status)
	require.NotNil(t, response.Assignee)
	require.Equal(t, f.assignee.Email, response.Assignee.Email)
}

func TestTaskHandler_Create_MemberForbidden(t *testing.T) {
	f := setupTaskTest(t)

	// Task creation is owner-only.
	w := doRequest(t, f.env, http.MethodPost, "/projects/"+f.project.ID+"/tasks", map[string]string{
		"name":     "sneaky task",
		"assignee": f.member.ID,
	}, f.member)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskHandler_Create_UnknownAssignee(t *testing.T) {
	f := setupTaskTest(t)

	w := doRequest(t, f.env, http.MethodPost, "/projects/"+f.project.ID+"/tasks", map[string]string{
		"name":     "task",
		"assignee": "USER_missing000000",
	}, f.owner)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaskHandler_Get(t *testing.T) {
	f := setupTaskTest(t)

	w := doRequest(t, f.env, http.MethodGet, "/projects/"+f.project.ID+"/tasks/"+f.task.ID, nil, f.member)
	require.Equal(t, http.StatusOK, w.Code)

	var response taskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, f.task.ID, response.ID)
	require.NotNil(t, response.Assignee)
	require.Equal(t, f.assignee.Name, response.Assignee.Name)

	w = doRequest(t, f.env, http.MethodGet, "/projects/"+f.project.ID+"/tasks/TASK_missing000000", nil, f.member)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaskHandler_Edit(t *testing.T) {
	f := setupTaskTest(t)

	w := doRequest(t, f.env, http.MethodPut, "/projects/"+f.project.ID+"/tasks/"+f.task.ID, map[string]string{
		"name": "write better docs",
	}, f.assignee)
	require.Equal(t, http.StatusOK, w.Code)

	var response taskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "write better docs", response.Name)

	// Neither owner nor assignee: rejected.
	w = doRequest(t, f.env, http.MethodPut, "/projects/"+f.project.ID+"/tasks/"+f.task.ID, map[string]string{
		"name": "vandalism",
	}, f.member)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskHandler_ChangeStatus(t *testing.T) {
	f := setupTaskTest(t)
	url := "/projects/" + f.project.ID + "/tasks/" + f.task.ID + "/status"

	// Completed is reachable directly from To Do, and back again.
	for _, status := range []string{"Completed", "To Do", "In Progress"} {
		w := doRequest(t, f.env, http.MethodPut, url, map[string]string{"status": status}, f.owner)
		require.Equal(t, http.StatusOK, w.Code)

		var response taskResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Equal(t, models.TaskStatus(status), response.Status)
	}

	w := doRequest(t, f.env, http.MethodPut, url, map[string]string{"status": "Completed"}, f.member)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, f.env, http.MethodPut, url, map[string]string{"status": "Archived"}, f.owner)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskHandler_Assign(t *testing.T) {
	f := setupTaskTest(t)
	url := "/projects/" + f.project.ID + "/tasks/" + f.task.ID + "/assign"

	w := doRequest(t, f.env, http.MethodPut, url, map[string]string{"assignee": f.member.ID}, f.owner)
	require.Equal(t, http.StatusOK, w.Code)

	var response taskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, f.member.ID, response.AssigneeID)

	// Reassignment is owner-only.
	w = doRequest(t, f.env, http.MethodPut, url, map[string]string{"assignee": f.assignee.ID}, f.member)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
