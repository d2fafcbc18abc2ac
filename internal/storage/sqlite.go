package storage

import (
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"
	_ "github.com/mattn/go-sqlite3"

	"github.com/biqgook/raffletool/internal/models"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens (or creates) the directory database at dbPath.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}

	s := &SQLiteStorage{db: db}
	if err := s.initDB(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "init schema")
	}
	return s, nil
}

func (s *SQLiteStorage) initDB() error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		reddit_username TEXT PRIMARY KEY,
		paypal_name TEXT NOT NULL DEFAULT '',
		discord_name TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_users_paypal ON users(paypal_name);
	CREATE INDEX IF NOT EXISTS idx_users_discord ON users(discord_name);
	`
	_, err := s.db.Exec(query)
	return err
}

// GetUser looks a user up by Reddit username.
func (s *SQLiteStorage) GetUser(username string) (*models.User, error) {
	row := s.db.QueryRow(
		`SELECT reddit_username, paypal_name, discord_name, created_at, updated_at
		 FROM users WHERE reddit_username = ?`, username)

	var user models.User
	var createdAt, updatedAt string
	err := row.Scan(&user.RedditUsername, &user.PayPalName, &user.DiscordName, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ErrUserNotFound, "username %q", username)
	}
	if err != nil {
		return nil, errors.Wrap(err, "query user")
	}
	user.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	user.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &user, nil
}

// ListUsers returns all users ordered by Reddit username.
func (s *SQLiteStorage) ListUsers() ([]*models.User, error) {
	rows, err := s.db.Query(
		`SELECT reddit_username, paypal_name, discord_name, created_at, updated_at
		 FROM users ORDER BY reddit_username`)
	if err != nil {
		return nil, errors.Wrap(err, "query users")
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		var createdAt, updatedAt string
		if err := rows.Scan(&user.RedditUsername, &user.PayPalName, &user.DiscordName,
			&createdAt, &updatedAt); err != nil {
			return nil, errors.Wrap(err, "scan user")
		}
		user.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		user.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		users = append(users, &user)
	}
	return users, rows.Err()
}

// AddUser inserts a new user.
func (s *SQLiteStorage) AddUser(user *models.User) error {
	var count int
	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM users WHERE reddit_username = ?`,
		user.RedditUsername).Scan(&count); err != nil {
		return errors.Wrap(err, "check existing user")
	}
	if count > 0 {
		return errors.Wrapf(ErrUserExists, "username %q", user.RedditUsername)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO users (reddit_username, paypal_name, discord_name, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		user.RedditUsername, user.PayPalName, user.DiscordName, now, now)
	return errors.Wrap(err, "insert user")
}

// UpdateUser rewrites a user's contact names.
func (s *SQLiteStorage) UpdateUser(user *models.User) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`UPDATE users SET paypal_name = ?, discord_name = ?, updated_at = ?
		 WHERE reddit_username = ?`,
		user.PayPalName, user.DiscordName, now, user.RedditUsername)
	if err != nil {
		return errors.Wrap(err, "update user")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if affected == 0 {
		return errors.Wrapf(ErrUserNotFound, "username %q", user.RedditUsername)
	}
	return nil
}

// DeleteUser removes a user.
func (s *SQLiteStorage) DeleteUser(username string) error {
	res, err := s.db.Exec(`DELETE FROM users WHERE reddit_username = ?`, username)
	if err != nil {
		return errors.Wrap(err, "delete user")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if affected == 0 {
		return errors.Wrapf(ErrUserNotFound, "username %q", username)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
