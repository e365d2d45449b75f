package database

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/brendenGit/Warbler/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// setupTestDB initializes an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := OpenInMemory(t.Name())
	if err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})
	return db
}

func seedUser(t *testing.T, db *DB, username string) models.User {
	t.Helper()
	u := models.User{Username: username, Email: username + "@test.com", Password: "HASHED_PASSWORD"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

func TestWithForeignKeys(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "warbler.db?_foreign_keys=on"},
		{"warbler.db", "warbler.db?_foreign_keys=on"},
		{"file:x?mode=memory", "file:x?mode=memory&_foreign_keys=on"},
		{"file:x?_fk=1", "file:x?_fk=1"},
		{"file:x?_foreign_keys=off", "file:x?_foreign_keys=off"},
	}
	for _, tt := range tests {
		if got := withForeignKeys(tt.in); got != tt.want {
			t.Errorf("withForeignKeys(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewUnsupportedDriver(t *testing.T) {
	if _, err := New("oracle", "whatever"); err == nil {
		t.Fatal("New() with unsupported driver returned nil error")
	}
}

func TestDuplicateUsernameIsUniqueViolation(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "testuser")

	dup := models.User{Username: "testuser", Email: "other@test.com", Password: "x"}
	err := TranslateError("create user", db.Create(&dup).Error)
	if !errors.Is(err, models.ErrUniqueViolation) {
		t.Fatalf("err = %v; want ErrUniqueViolation", err)
	}
}

func TestMessageWithUnknownUserIsReferentialIntegrity(t *testing.T) {
	db := setupTestDB(t)

	m := models.Message{Text: "test message", Timestamp: time.Now().UTC(), UserID: 9999999}
	err := TranslateError("create message", db.Omit("User").Create(&m).Error)
	if !errors.Is(err, models.ErrReferentialIntegrity) {
		t.Fatalf("err = %v; want ErrReferentialIntegrity", err)
	}
}

func TestDeletingUserCascades(t *testing.T) {
	db := setupTestDB(t)
	u1 := seedUser(t, db, "one")
	u2 := seedUser(t, db, "two")

	m := models.Message{Text: "hi", Timestamp: time.Now().UTC(), UserID: u1.ID}
	if err := db.Omit("User").Create(&m).Error; err != nil {
		t.Fatalf("create message: %v", err)
	}
	if err := db.Omit("Follower", "Followed").Create(&models.Follow{FollowerID: u2.ID, FollowedID: u1.ID}).Error; err != nil {
		t.Fatalf("create follow: %v", err)
	}
	if err := db.Omit("User", "Message").Create(&models.Like{UserID: u2.ID, MessageID: m.ID}).Error; err != nil {
		t.Fatalf("create like: %v", err)
	}

	if err := db.Delete(&models.User{}, u1.ID).Error; err != nil {
		t.Fatalf("delete user: %v", err)
	}

	for _, model := range []any{&models.Message{}, &models.Follow{}, &models.Like{}} {
		var n int64
		db.Model(model).Count(&n)
		if n != 0 {
			t.Errorf("%T rows after user delete = %d; want 0", model, n)
		}
	}
}

func TestTranslateError(t *testing.T) {
	base := errors.New("boom")
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"not found", gorm.ErrRecordNotFound, models.ErrNotFound},
		{"gorm duplicate", gorm.ErrDuplicatedKey, models.ErrUniqueViolation},
		{"gorm fk", gorm.ErrForeignKeyViolated, models.ErrReferentialIntegrity},
		{"sqlite unique", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, models.ErrUniqueViolation},
		{"sqlite fk", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}, models.ErrReferentialIntegrity},
		{"pg unique", &pgconn.PgError{Code: "23505"}, models.ErrUniqueViolation},
		{"pg fk", fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "23503"}), models.ErrReferentialIntegrity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TranslateError("op", tt.err)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("TranslateError(nil) = %v", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("TranslateError() = %v; want wrapping %v", got, tt.want)
			}
			if !errors.Is(got, tt.err) {
				t.Errorf("TranslateError() = %v; lost original error", got)
			}
		})
	}

	if got := TranslateError("op", base); !errors.Is(got, base) || errors.Is(got, models.ErrNotFound) {
		t.Errorf("TranslateError(plain) = %v", got)
	}
}
