package service

import (
	"os"
	"path/filepath"
	"testing"

	"goblog/database"
	"goblog/database/model"

	"github.com/stretchr/testify/assert"
)

func setup(t *testing.T) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	if err := database.InitDB(dbPath); err != nil {
		t.Fatalf("init db: %v", err)
	}
	t.Cleanup(func() {
		db, _ := database.GetDB().DB()
		db.Close()
		os.Remove(dbPath)
	})
}

func TestRegisterAndCheckUser(t *testing.T) {
	setup(t)

	service := UserService{}

	err := service.Register("Ada", "Lovelace", "ada", "ada@example.com", "secret")
	assert.NoError(t, err)

	// stored password must be a hash, never the raw value
	var user model.User
	assert.NoError(t, database.GetDB().Where("username = ?", "ada").First(&user).Error)
	assert.NotEqual(t, "secret", user.Password)
	assert.NotEmpty(t, user.Password)

	assert.NotNil(t, service.CheckUser("ada@example.com", "secret"))
	assert.Nil(t, service.CheckUser("ada@example.com", "wrong"))
	assert.Nil(t, service.CheckUser("nobody@example.com", "secret"))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setup(t)

	service := UserService{}

	assert.NoError(t, service.Register("Ada", "Lovelace", "ada", "ada@example.com", "secret"))

	err := service.Register("Grace", "Hopper", "grace", "ada@example.com", "other")
	assert.ErrorIs(t, err, ErrEmailTaken)

	count, err := service.CountUsers()
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	setup(t)

	service := UserService{}

	assert.NoError(t, service.Register("Ada", "Lovelace", "ada", "ada@example.com", "secret"))

	err := service.Register("Ada", "Byron", "ada", "byron@example.com", "other")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	count, err := service.CountUsers()
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGetUser(t *testing.T) {
	setup(t)

	service := UserService{}
	assert.NoError(t, service.Register("Ada", "Lovelace", "ada", "ada@example.com", "secret"))

	created := service.CheckUser("ada@example.com", "secret")
	assert.NotNil(t, created)

	user, err := service.GetUser(created.Id)
	assert.NoError(t, err)
	assert.Equal(t, "ada", user.Username)
	assert.Equal(t, "Ada", user.FirstName)

	_, err = service.GetUser(9999)
	assert.True(t, database.IsNotFound(err))
}
