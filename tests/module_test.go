package tests

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminCreatesModuleWithActivities(t *testing.T) {
	_, adminToken := createUser(t, "content-admin", "admin", "")

	status, result := doRequest(t, "POST", "/api/admin/modules/", adminToken, map[string]interface{}{
		"title":     "Detective path",
		"archetype": "detective",
		"age_group": "teen",
	})
	require.Equal(t, fiber.StatusCreated, status)

	module := data(result)["module"].(map[string]interface{})
	assert.Equal(t, "Detective path", module["Title"])
	moduleID := int(module["ID"].(float64))

	status, result = doRequest(t, "POST",
		fmt.Sprintf("/api/admin/modules/%d/activities", moduleID), adminToken,
		map[string]interface{}{
			"title": "Find the fake profile",
			"kind":  "fake_news",
		})
	require.Equal(t, fiber.StatusCreated, status)
	activity := data(result)["activity"].(map[string]interface{})
	assert.Equal(t, "fake_news", activity["Kind"])
}

func TestAdminRoutesRejectLearners(t *testing.T) {
	_, learnerToken := createUser(t, "sneaky-learner", "learner", "teen")

	status, _ := doRequest(t, "POST", "/api/admin/modules/", learnerToken, map[string]interface{}{
		"title":     "Nope",
		"age_group": "teen",
	})
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestActivityKindIsValidated(t *testing.T) {
	_, adminToken := createUser(t, "kind-admin", "admin", "")

	status, result := doRequest(t, "POST", "/api/admin/modules/", adminToken, map[string]interface{}{
		"title":     "Kinds",
		"age_group": "child",
	})
	require.Equal(t, fiber.StatusCreated, status)
	moduleID := int(data(result)["module"].(map[string]interface{})["ID"].(float64))

	status, _ = doRequest(t, "POST",
		fmt.Sprintf("/api/admin/modules/%d/activities", moduleID), adminToken,
		map[string]interface{}{
			"title": "Bad kind",
			"kind":  "karaoke",
		})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestModuleListShowsCompletionRatio(t *testing.T) {
	user, token := createUser(t, "ratio-learner", "learner", "teen")
	activity := createActivity(t, "Ratio module", "Only step")

	doRequest(t, "POST", fmt.Sprintf("/api/activities/%d/start", activity.ID), token, nil)
	doRequest(t, "POST", fmt.Sprintf("/api/activities/%d/complete", activity.ID), token, nil)
	_ = user

	status, result := doRequest(t, "GET", "/api/modules/", token, nil)
	require.Equal(t, fiber.StatusOK, status)

	modules := data(result)["modules"].([]interface{})
	var found map[string]interface{}
	for _, m := range modules {
		entry := m.(map[string]interface{})
		if entry["title"] == "Ratio module" {
			found = entry
			break
		}
	}
	require.NotNil(t, found, "module should appear in the learner listing")
	assert.Equal(t, float64(1), found["completed"])
	assert.Equal(t, float64(1), found["total"])
}

func TestModuleDetailsShowsPerActivityStatus(t *testing.T) {
	_, token := createUser(t, "detail-learner", "learner", "teen")
	activity := createActivity(t, "Detail module", "Step one")

	doRequest(t, "POST", fmt.Sprintf("/api/activities/%d/start", activity.ID), token, nil)

	status, result := doRequest(t, "GET", fmt.Sprintf("/api/modules/%d", activity.ModuleID), token, nil)
	require.Equal(t, fiber.StatusOK, status)

	activities := data(result)["activities"].([]interface{})
	require.Len(t, activities, 1)
	entry := activities[0].(map[string]interface{})
	assert.Equal(t, "IN_PROGRESS", entry["status"])
	assert.Equal(t, float64(0), entry["xp_earned"])
}
