package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/collabhub/backend/internal/constants"
	apierrors "github.com/collabhub/backend/internal/errors"
	"github.com/collabhub/backend/internal/models"
)

func TestProjectHandler_Create(t *testing.T) {
	env := setupTestEnv(t)
	owner := registerTestUser(t, env, "alice", "alice@example.com")

	w := doRequest(t, env, http.MethodPost, "/projects", map[string]interface{}{
		"name":        "apollo",
		"description": "moonshot",
		"deadline":    time.Now().Add(72 * time.Hour).Format(time.RFC3339),
	}, owner)

	require.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.True(t, strings.HasPrefix(response.ID, "PROJECT_"))
	require.Equal(t, "apollo", response.Name)
	require.Len(t, response.Code, constants.JoinCodeLength)

	// The creator holds the only membership, as Owner.
	var memberships []models.Membership
	require.NoError(t, env.db.Where("project_id = ?", response.ID).Find(&memberships).Error)
	require.Len(t, memberships, 1)
	require.Equal(t, models.RoleOwner, memberships[0].Role)
}

func TestProjectHandler_Create_MissingDeadline(t *testing.T) {
	env := setupTestEnv(t)
	owner := registerTestUser(t, env, "alice", "alice@example.com")

	w := doRequest(t, env, http.MethodPost, "/projects", map[string]interface{}{
		"name": "apollo",
	}, owner)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Equal(t, apierrors.ErrCodeInvalidInput, decodeError(t, w).Error.Code)
}

func TestProjectHandler_List(t *testing.T) {
	env := setupTestEnv(t)
	owner := registerTestUser(t, env, "alice", "alice@example.com")
	project := createTestProject(t, env, owner.ID)

	w := doRequest(t, env, http.MethodGet, "/projects", nil, owner)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Projects []struct {
			ID   string      `json:"id"`
			Role models.Role `json:"role"`
		} `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Projects, 1)
	require.Equal(t, project.ID, response.Projects[0].ID)
	require.Equal(t, models.RoleOwner, response.Projects[0].Role)
}

func TestProjectHandler_Get(t *testing.T) {
	env := setupTestEnv(t)
	owner := registerTestUser(t, env, "alice", "alice@example.com")
	outsider := registerTestUser(t, env, "bob", "bob@example.com")
	project := createTestProject(t, env, owner.ID)

	w := doRequest(t, env, http.MethodGet, "/projects/"+project.ID, nil, owner)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Project  struct{ ID string } `json:"project"`
		YourRole models.Role         `json:"your_role"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, project.ID, response.Project.ID)
	require.Equal(t, models.RoleOwner, response.YourRole)

	// Non-members are rejected; a missing project wins over membership.
	w = doRequest(t, env, http.MethodGet, "/projects/"+project.ID, nil, outsider)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, env, http.MethodGet, "/projects/PROJECT_missing00000", nil, outsider)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectHandler_Members(t *testing.T) {
	env := setupTestEnv(t)
	owner := registerTestUser(t, env, "alice", "alice@example.com")
	member := registerTestUser(t, env, "bob", "bob@example.com")
	project := createTestProject(t, env, owner.ID)

	_, err := env.projectService.JoinByCode(context.Background(), project.Code, member.ID)
	require.NoError(t, err)

	w := doRequest(t, env, http.MethodGet, "/projects/"+project.ID+"/members", nil, member)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Members []struct {
			User struct {
				Email string `json:"email"`
			} `json:"user"`
			Role models.Role `json:"role"`
		} `json:"members"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Members, 2)

	roles := map[string]models.Role{}
	for _, m := range response.Members {
		roles[m.User.Email] = m.Role
	}
	require.Equal(t, models.RoleOwner, roles["alice@example.com"])
	require.Equal(t, models.RoleMember, roles["bob@example.com"])
}

func TestProjectHandler_Join(t *testing.T) {
	env := setupTestEnv(t)
	owner := registerTestUser(t, env, "alice", "alice@example.com")
	joiner := registerTestUser(t, env, "bob", "bob@example.com")
	project := createTestProject(t, env, owner.ID)

	w := doRequest(t, env, http.MethodPost, "/projects/join/code/"+project.Code, nil, joiner)
	require.Equal(t, http.StatusOK, w.Code)

	// Joining again with the same code reports already-member.
	w = doRequest(t, env, http.MethodPost, "/projects/join/code/"+project.Code, nil, joiner)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// An unknown code reports not-found.
	w = doRequest(t, env, http.MethodPost, "/projects/join/code/ZZZZZ", nil, joiner)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectHandler_Delete(t *testing.T) {
	env := setupTestEnv(t)
	owner := registerTestUser(t, env, "alice", "alice@example.com")
	member := registerTestUser(t, env, "bob", "bob@example.com")
	outsider := registerTestUser(t, env, "carol", "carol@example.com")
	project := createTestProject(t, env, owner.ID)

	_, err := env.projectService.JoinByCode(context.Background(), project.Code, member.ID)
	require.NoError(t, err)

	w := doRequest(t, env, http.MethodDelete, "/projects/"+project.ID, nil, outsider)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, env, http.MethodDelete, "/projects/"+project.ID, nil, member)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, env, http.MethodDelete, "/projects/"+project.ID, nil, owner)
	require.Equal(t, http.StatusOK, w.Code)

	// Gone for all former members.
	w = doRequest(t, env, http.MethodGet, "/projects", nil, member)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Projects []json.RawMessage `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Empty(t, response.Projects)
}

func TestProjectHandler_Unauthenticated(t *testing.T) {
	env := setupTestEnv(t)

	w := doRequest(t, env, http.MethodGet, "/projects", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, apierrors.ErrCodeUnauthorized, decodeError(t, w).Error.Code)
}
