package db

import (
	"testing"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/config"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTestDB_MigratesAllModels(t *testing.T) {
	testDB, err := SetupTestDB()
	require.NoError(t, err)
	defer CleanupTestDB(testDB)

	for _, m := range Models() {
		assert.True(t, testDB.Migrator().HasTable(m))
	}
}

func TestSeedAdmin(t *testing.T) {
	testDB, err := SetupTestDB()
	require.NoError(t, err)
	defer CleanupTestDB(testDB)

	cfg := &config.AdminSeedConfig{Phone: "0500000000", Password: "s3cret-pass", Name: "root"}

	require.NoError(t, seedAdmin(testDB, cfg))
	// second run is a no-op
	require.NoError(t, seedAdmin(testDB, cfg))

	var admins []model.Admin
	require.NoError(t, testDB.Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, model.StatusActive, admins[0].Status)
	assert.True(t, admins[0].IsActive)
	assert.True(t, util.VerifyPassword(admins[0].PasswordHash, "s3cret-pass"))
}

func TestSeedAdmin_SkipsWithoutCredentials(t *testing.T) {
	testDB, err := SetupTestDB()
	require.NoError(t, err)
	defer CleanupTestDB(testDB)

	require.NoError(t, seedAdmin(testDB, &config.AdminSeedConfig{}))

	var count int64
	testDB.Model(&model.Admin{}).Count(&count)
	assert.Zero(t, count)
}
