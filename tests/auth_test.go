package tests

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	status, result := doRequest(t, "POST", "/api/auth/register", "", map[string]string{
		"username":  "fresh-learner",
		"email":     "fresh@example.com",
		"password":  "password123",
		"age_group": "teen",
	})

	require.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, result["token"])

	user := result["user"].(map[string]interface{})
	assert.Equal(t, "fresh-learner", user["username"])
	assert.Equal(t, "learner", user["role"])
	assert.Equal(t, "teen", user["age_group"])
}

func TestRegisterValidation(t *testing.T) {
	status, _ := doRequest(t, "POST", "/api/auth/register", "", map[string]string{
		"username":  "ab", // too short
		"email":     "not-an-email",
		"password":  "short",
		"age_group": "teen",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestRegisterLearnerNeedsAgeGroup(t *testing.T) {
	status, _ := doRequest(t, "POST", "/api/auth/register", "", map[string]string{
		"username": "groupless",
		"email":    "groupless@example.com",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestLogin(t *testing.T) {
	createUser(t, "login-user", "learner", "teen")

	status, result := doRequest(t, "POST", "/api/auth/login", "", map[string]string{
		"username": "login-user",
		"password": "password123",
	})

	require.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, result["token"])
}

func TestLoginWrongPassword(t *testing.T) {
	createUser(t, "login-victim", "learner", "teen")

	status, _ := doRequest(t, "POST", "/api/auth/login", "", map[string]string{
		"username": "login-victim",
		"password": "wrong-password",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestGetProfile(t *testing.T) {
	_, token := doRegisterUser(t)

	status, result := doRequest(t, "GET", "/api/user/profile", token, nil)
	require.Equal(t, fiber.StatusOK, status)

	d := data(result)
	assert.Equal(t, "profile-user", d["username"])
	assert.Equal(t, float64(0), d["xp"])
	assert.Equal(t, float64(0), d["streak"])
}

func doRegisterUser(t *testing.T) (map[string]interface{}, string) {
	t.Helper()

	status, result := doRequest(t, "POST", "/api/auth/register", "", map[string]string{
		"username":  "profile-user",
		"email":     "profile@example.com",
		"password":  "password123",
		"age_group": "child",
	})
	require.Equal(t, fiber.StatusOK, status)

	user := result["user"].(map[string]interface{})
	return user, result["token"].(string)
}

func TestUpdateProfileTimezone(t *testing.T) {
	_, token := createUser(t, "tz-user", "learner", "teen")

	status, _ := doRequest(t, "PUT", "/api/user/profile", token, map[string]string{
		"timezone": "Europe/Lisbon",
	})
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = doRequest(t, "PUT", "/api/user/profile", token, map[string]string{
		"timezone": "Mars/Olympus",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}
