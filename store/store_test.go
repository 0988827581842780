package store

import (
	"context"
	"testing"
	"time"

	"github.com/GleritasToken/gleritas-token-manager/database"
	"github.com/GleritasToken/gleritas-token-manager/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.UserTask{},
		&models.Referral{},
		&models.Session{},
		&models.Admin{},
		&models.AdminSession{},
	))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		_ = sqlDB.Close()
	})
	return db
}

func seedTask(t *testing.T, db *gorm.DB, title string, points int, active bool) models.Task {
	t.Helper()
	task := models.Task{
		Title:       title,
		Description: title,
		Points:      points,
		TaskType:    models.TaskTypeOther,
		IsActive:    active,
	}
	require.NoError(t, db.Create(&task).Error)
	if !active {
		// gorm skips zero-valued fields that carry a default tag on Create,
		// so is_active=false has to be written explicitly
		require.NoError(t, db.Model(&task).Update("is_active", false).Error)
	}
	return task
}

func mustCreateUser(t *testing.T, username, email string) *models.User {
	t.Helper()
	user, err := CreateUser(context.Background(), username, email, "hash", nil)
	require.NoError(t, err)
	return user
}

func connectTestWallet(t *testing.T, userID uint) {
	t.Helper()
	_, err := ConnectWallet(context.Background(), userID, testWalletAddress)
	require.NoError(t, err)
}

const testWalletAddress = "0x1234567890abcdef1234567890abcdef12345678"

func TestCreateUserStartsWithSignupBonus(t *testing.T) {
	db := setupTestDB(t)
	seedTask(t, db, "Join Telegram Group", 100, true)
	seedTask(t, db, "Follow Twitter Page", 150, true)
	seedTask(t, db, "Old Promo", 75, false)

	user := mustCreateUser(t, "alice", "alice@example.com")

	assert.Equal(t, SignupBonus, user.Points)
	assert.Len(t, user.ReferralCode, 10)
	assert.False(t, user.WalletConnected)

	// exactly one incomplete assignment per active task, none for inactive
	var assignments []models.UserTask
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&assignments).Error)
	assert.Len(t, assignments, 2)
	for _, ut := range assignments {
		assert.False(t, ut.Completed)
		assert.Nil(t, ut.CompletedAt)
	}
}

func TestCreateUserRejectsDuplicates(t *testing.T) {
	setupTestDB(t)
	mustCreateUser(t, "alice", "alice@example.com")

	_, err := CreateUser(context.Background(), "bob", "alice@example.com", "hash", nil)
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	_, err = CreateUser(context.Background(), "alice", "bob@example.com", "hash", nil)
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestCreateUserKeepsUnknownReferralCode(t *testing.T) {
	setupTestDB(t)
	code := "NOSUCHCODE"
	user, err := CreateUser(context.Background(), "alice", "alice@example.com", "hash", &code)
	require.NoError(t, err)
	require.NotNil(t, user.ReferredBy)
	assert.Equal(t, code, *user.ReferredBy)
}

func TestCreateReferralCreditsReferrer(t *testing.T) {
	db := setupTestDB(t)
	referrer := mustCreateUser(t, "alice", "alice@example.com")
	referred := mustCreateUser(t, "bob", "bob@example.com")

	ref, err := CreateReferral(context.Background(), referrer.ID, referred.ID, ReferralBonus)
	require.NoError(t, err)
	assert.Equal(t, ReferralBonus, ref.PointsEarned)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, referrer.ID).Error)
	assert.Equal(t, SignupBonus+ReferralBonus, reloaded.Points)

	count, err := GetReferralCount(context.Background(), referrer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// the referred account is untouched; reset the dest so the previous
	// primary key is not reused as a query condition
	reloaded = models.User{}
	require.NoError(t, db.First(&reloaded, referred.ID).Error)
	assert.Equal(t, SignupBonus, reloaded.Points)
}

func TestConnectWalletValidatesLength(t *testing.T) {
	db := setupTestDB(t)
	user := mustCreateUser(t, "alice", "alice@example.com")

	_, err := ConnectWallet(context.Background(), user.ID, "0xshort")
	assert.ErrorIs(t, err, ErrInvalidWallet)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.Nil(t, reloaded.WalletAddress)
	assert.False(t, reloaded.WalletConnected)
	assert.Equal(t, SignupBonus, reloaded.Points)
}

func TestConnectWalletBonusIsOneTime(t *testing.T) {
	setupTestDB(t)
	user := mustCreateUser(t, "alice", "alice@example.com")

	updated, err := ConnectWallet(context.Background(), user.ID, testWalletAddress)
	require.NoError(t, err)
	assert.True(t, updated.WalletConnected)
	require.NotNil(t, updated.WalletAddress)
	assert.Equal(t, testWalletAddress, *updated.WalletAddress)
	assert.Equal(t, SignupBonus+WalletBonus, updated.Points)

	// reconnecting swaps the address but never re-awards the bonus
	other := "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd"
	updated, err = ConnectWallet(context.Background(), user.ID, other)
	require.NoError(t, err)
	assert.Equal(t, SignupBonus+WalletBonus, updated.Points)
	assert.Equal(t, other, *updated.WalletAddress)

	// resubmitting the identical address succeeds as a no-op; a connected
	// user must never see an error for a repeated connect (double clicks)
	updated, err = ConnectWallet(context.Background(), user.ID, other)
	require.NoError(t, err)
	assert.Equal(t, SignupBonus+WalletBonus, updated.Points)
	assert.Equal(t, other, *updated.WalletAddress)
}

func TestConnectWalletUnknownUser(t *testing.T) {
	setupTestDB(t)

	_, err := ConnectWallet(context.Background(), 999, testWalletAddress)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompleteTaskRequiresWallet(t *testing.T) {
	db := setupTestDB(t)
	task := seedTask(t, db, "Join Telegram Group", 100, true)
	user := mustCreateUser(t, "alice", "alice@example.com")

	_, err := CompleteTask(context.Background(), user.ID, task.ID)
	assert.ErrorIs(t, err, ErrWalletRequired)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.Equal(t, SignupBonus, reloaded.Points)

	var ut models.UserTask
	require.NoError(t, db.Where("user_id = ? AND task_id = ?", user.ID, task.ID).First(&ut).Error)
	assert.False(t, ut.Completed)
}

func TestCompleteTaskCreditsOnce(t *testing.T) {
	db := setupTestDB(t)
	task := seedTask(t, db, "Join Telegram Group", 100, true)
	user := mustCreateUser(t, "alice", "alice@example.com")
	connectTestWallet(t, user.ID)

	ut, err := CompleteTask(context.Background(), user.ID, task.ID)
	require.NoError(t, err)
	assert.True(t, ut.Completed)
	require.NotNil(t, ut.CompletedAt)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.Equal(t, SignupBonus+WalletBonus+task.Points, reloaded.Points)

	// repeat completion must not credit again
	_, err = CompleteTask(context.Background(), user.ID, task.ID)
	assert.ErrorIs(t, err, ErrTaskCompleted)

	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.Equal(t, SignupBonus+WalletBonus+task.Points, reloaded.Points)
}

func TestCompleteTaskWithoutAssignment(t *testing.T) {
	db := setupTestDB(t)
	user := mustCreateUser(t, "alice", "alice@example.com")
	connectTestWallet(t, user.ID)

	// tasks created after signup are not assigned retroactively
	late := seedTask(t, db, "Late Task", 100, true)
	_, err := CompleteTask(context.Background(), user.ID, late.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetUserTasksJoinsTaskDefinition(t *testing.T) {
	db := setupTestDB(t)
	tg := seedTask(t, db, "Join Telegram Group", 100, true)
	tw := seedTask(t, db, "Follow Twitter Page", 150, true)
	user := mustCreateUser(t, "alice", "alice@example.com")

	tasks, err := GetUserTasks(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, tg.Title, tasks[0].Task.Title)
	assert.Equal(t, tw.Title, tasks[1].Task.Title)
}

func TestSessionRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	user := mustCreateUser(t, "alice", "alice@example.com")

	session, err := CreateSession(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, session.Token, 32)
	assert.WithinDuration(t, time.Now().Add(SessionTTL), session.ExpiresAt, time.Minute)

	got, err := GetSession(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.UserID)

	// expired rows stop matching but are not deleted
	require.NoError(t, db.Model(&models.Session{}).
		Where("token = ?", session.Token).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)
	_, err = GetSession(context.Background(), session.Token)
	assert.ErrorIs(t, err, ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Session{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeleteSessionIsIdempotent(t *testing.T) {
	setupTestDB(t)
	user := mustCreateUser(t, "alice", "alice@example.com")

	session, err := CreateSession(context.Background(), user.ID)
	require.NoError(t, err)

	require.NoError(t, DeleteSession(context.Background(), session.Token))
	_, err = GetSession(context.Background(), session.Token)
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting again, or deleting an unknown token, is not an error
	require.NoError(t, DeleteSession(context.Background(), session.Token))
	require.NoError(t, DeleteSession(context.Background(), "never-issued"))
}

func TestAdminSessionExpiry(t *testing.T) {
	db := setupTestDB(t)
	admin := models.Admin{Username: "admin", Password: "hash"}
	require.NoError(t, db.Create(&admin).Error)

	session, err := CreateAdminSession(context.Background(), admin.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(AdminSessionTTL), session.ExpiresAt, time.Minute)

	got, err := GetAdminSession(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.AdminID)

	require.NoError(t, db.Model(&models.AdminSession{}).
		Where("token = ?", session.Token).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)
	_, err = GetAdminSession(context.Background(), session.Token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUserCascades(t *testing.T) {
	db := setupTestDB(t)
	seedTask(t, db, "Join Telegram Group", 100, true)
	referrer := mustCreateUser(t, "alice", "alice@example.com")
	user := mustCreateUser(t, "bob", "bob@example.com")
	_, err := CreateReferral(context.Background(), referrer.ID, user.ID, ReferralBonus)
	require.NoError(t, err)
	session, err := CreateSession(context.Background(), user.ID)
	require.NoError(t, err)

	require.NoError(t, DeleteUser(context.Background(), user.ID))

	_, err = GetUser(context.Background(), user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = GetSession(context.Background(), session.Token)
	assert.ErrorIs(t, err, ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&models.UserTask{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.Referral{}).Where("referred_user_id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)

	assert.ErrorIs(t, DeleteUser(context.Background(), user.ID), ErrNotFound)
}

// End-to-end accounting walk: mirrors the product's referral scenario.
func TestAccountingScenario(t *testing.T) {
	db := setupTestDB(t)
	task := seedTask(t, db, "Join Telegram Group", 100, true)

	userA := mustCreateUser(t, "alice", "alice@example.com")
	assert.Equal(t, 500, userA.Points)

	userB, err := CreateUser(context.Background(), "bob", "bob@example.com", "hash", &userA.ReferralCode)
	require.NoError(t, err)
	assert.Equal(t, 500, userB.Points)

	_, err = CreateReferral(context.Background(), userA.ID, userB.ID, ReferralBonus)
	require.NoError(t, err)

	reloadedA, err := GetUser(context.Background(), userA.ID)
	require.NoError(t, err)
	assert.Equal(t, 750, reloadedA.Points)

	updatedB, err := ConnectWallet(context.Background(), userB.ID, testWalletAddress)
	require.NoError(t, err)
	assert.Equal(t, 600, updatedB.Points)
	assert.True(t, updatedB.WalletConnected)

	ut, err := CompleteTask(context.Background(), userB.ID, task.ID)
	require.NoError(t, err)
	assert.True(t, ut.Completed)

	finalB, err := GetUser(context.Background(), userB.ID)
	require.NoError(t, err)
	assert.Equal(t, 700, finalB.Points)
}
