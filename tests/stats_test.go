package tests

import (
	"fmt"
	"testing"
	"time"

	"github.com/ViniMagaa/cyberlevel-sub001/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// completeNow inserts a completed progress row directly, bypassing the API.
func completeNow(t *testing.T, userID, activityID uint, completedAt time.Time, xp int) {
	t.Helper()

	started := completedAt.Add(-20 * time.Second)
	if err := db.Create(&models.ActivityProgress{
		UserID:      userID,
		ActivityID:  activityID,
		Status:      models.ProgressCompleted,
		StartedAt:   &started,
		CompletedAt: &completedAt,
		Attempts:    2,
		XPEarned:    xp,
	}).Error; err != nil {
		t.Fatalf("could not seed progress: %v", err)
	}
}

func TestDashboardEmpty(t *testing.T) {
	_, token := createUser(t, "newcomer", "learner", "teen")

	status, result := doRequest(t, "GET", "/api/stats/dashboard", token, nil)
	require.Equal(t, fiber.StatusOK, status)

	d := data(result)
	assert.Equal(t, float64(0), d["streak"])
	assert.Equal(t, false, d["completed_today"])
	assert.Equal(t, float64(0), d["total_xp"])
	assert.Empty(t, d["current_level"])

	timeSpent := d["time_spent"].(map[string]interface{})
	assert.Equal(t, float64(0), timeSpent["hours"])
	assert.Equal(t, float64(0), timeSpent["minutes"])

	weekly := d["weekly_activity"].([]interface{})
	assert.Len(t, weekly, 7)
}

func TestDashboardAggregates(t *testing.T) {
	user, token := createUser(t, "veteran", "learner", "teen")

	module := models.Module{Title: "Guardian path", Archetype: "guardian", AgeGroup: "teen"}
	require.NoError(t, db.Create(&module).Error)

	var activities []models.Activity
	for i := 0; i < 3; i++ {
		a := models.Activity{ModuleID: module.ID, Title: fmt.Sprintf("Step %d", i+1), Kind: "quiz"}
		require.NoError(t, db.Create(&a).Error)
		activities = append(activities, a)
	}

	now := time.Now()
	completeNow(t, user.ID, activities[0].ID, now.Add(-48*time.Hour), 100)
	completeNow(t, user.ID, activities[1].ID, now.Add(-24*time.Hour), 90)
	completeNow(t, user.ID, activities[2].ID, now.Add(-time.Minute), 80)
	require.NoError(t, db.Model(&user).UpdateColumn("xp", 270).Error)

	status, result := doRequest(t, "GET", "/api/stats/dashboard", token, nil)
	require.Equal(t, fiber.StatusOK, status)

	d := data(result)
	assert.Equal(t, float64(3), d["streak"])
	assert.Equal(t, true, d["completed_today"])
	assert.Equal(t, float64(270), d["total_xp"])

	level := d["current_level"].(map[string]interface{})
	assert.Equal(t, "Step 3", level["activity"])
	assert.Equal(t, "Guardian path", level["module"])
	assert.Equal(t, float64(3), level["module_completed"])
	assert.Equal(t, float64(3), level["module_total"])

	// three completions at 20s each
	timeSpent := d["time_spent"].(map[string]interface{})
	assert.Equal(t, float64(0), timeSpent["hours"])
	assert.Equal(t, float64(1), timeSpent["minutes"])

	weekly := d["weekly_activity"].([]interface{})
	require.Len(t, weekly, 7)
	today := weekly[6].(map[string]interface{})
	assert.Equal(t, float64(1), today["count"])
}

func TestDashboardExcludesInvalidIntervals(t *testing.T) {
	user, token := createUser(t, "glitchy", "learner", "teen")
	activity := createActivity(t, "Clock skew", "Bad clock")

	// completed_at before started_at: ignored by the time total
	completed := time.Now().Add(-time.Hour)
	started := completed.Add(30 * time.Minute)
	require.NoError(t, db.Create(&models.ActivityProgress{
		UserID:      user.ID,
		ActivityID:  activity.ID,
		Status:      models.ProgressCompleted,
		StartedAt:   &started,
		CompletedAt: &completed,
		XPEarned:    10,
	}).Error)

	status, result := doRequest(t, "GET", "/api/stats/dashboard", token, nil)
	require.Equal(t, fiber.StatusOK, status)

	timeSpent := data(result)["time_spent"].(map[string]interface{})
	assert.Equal(t, float64(0), timeSpent["hours"])
	assert.Equal(t, float64(0), timeSpent["minutes"])
}

func TestRankingOrdersByXPWithinAgeGroup(t *testing.T) {
	first, _ := createUser(t, "rank-gold", "learner", "child")
	second, token := createUser(t, "rank-silver", "learner", "child")
	third, _ := createUser(t, "rank-bronze", "learner", "child")
	outsider, _ := createUser(t, "rank-teen", "learner", "teen")

	db.Model(&first).UpdateColumn("xp", 500)
	db.Model(&second).UpdateColumn("xp", 300)
	db.Model(&third).UpdateColumn("xp", 300)
	db.Model(&outsider).UpdateColumn("xp", 9000)

	status, result := doRequest(t, "GET", "/api/stats/ranking", token, nil)
	require.Equal(t, fiber.StatusOK, status)

	d := data(result)
	assert.Equal(t, "child", d["age_group"])
	assert.Equal(t, float64(2), d["position"])

	ranking := d["ranking"].([]interface{})
	require.GreaterOrEqual(t, len(ranking), 3)
	top := ranking[0].(map[string]interface{})
	assert.Equal(t, "rank-gold", top["username"])

	// equal XP ties break on the older account
	runnerUp := ranking[1].(map[string]interface{})
	assert.Equal(t, "rank-silver", runnerUp["username"])
}

func TestDashboardRequiresAuth(t *testing.T) {
	status, _ := doRequest(t, "GET", "/api/stats/dashboard", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
