package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func tokenRows(userID uint64, expiresAt time.Time, revokedAt interface{}) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
		AddRow(userID, expiresAt, revokedAt)
}

func TestValidateRefreshResolvesActiveSession(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT user_id, expires_at, revoked_at").
		WithArgs("hash-a").
		WillReturnRows(tokenRows(7, time.Now().UTC().Add(time.Hour), nil))

	repo := NewTokenRepo(db)
	userID, err := repo.ValidateRefresh(context.Background(), "hash-a")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if userID != 7 {
		t.Fatalf("expected user 7, got %d", userID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestValidateRefreshTreatsRevokedAsUnknown(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT user_id, expires_at, revoked_at").
		WithArgs("hash-b").
		WillReturnRows(tokenRows(7, time.Now().UTC().Add(time.Hour), time.Now().UTC()))

	repo := NewTokenRepo(db)
	if _, err := repo.ValidateRefresh(context.Background(), "hash-b"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows for revoked session, got %v", err)
	}
}

func TestValidateRefreshTreatsExpiredAsUnknown(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT user_id, expires_at, revoked_at").
		WithArgs("hash-c").
		WillReturnRows(tokenRows(7, time.Now().UTC().Add(-time.Minute), nil))

	repo := NewTokenRepo(db)
	if _, err := repo.ValidateRefresh(context.Background(), "hash-c"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows for expired session, got %v", err)
	}
}

func TestStoreRefreshInsertsHashRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	exp := time.Now().UTC().Add(30 * 24 * time.Hour)
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WithArgs(uint64(7), "hash-d", exp).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewTokenRepo(db)
	if err := repo.StoreRefresh(context.Background(), 7, "hash-d", exp); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
