// Package storage persists users, transactions, and sessions in a relational
// store through GORM.
package storage

import (
	"errors"
	"time"

	"finhub/internal/apperrors"
	"finhub/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB wraps a GORM connection.
type DB struct {
	conn *gorm.DB
}

// NewDB opens the database at path and creates the schema if absent.
func NewDB(path string) (*DB, error) {
	conn, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := conn.AutoMigrate(
		&models.User{},
		&models.Income{},
		&models.Outcome{},
		&models.Session{},
	); err != nil {
		return nil, err
	}

	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	sqlDB, err := db.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CreateUser creates a new user. The password must already be hashed.
func (db *DB) CreateUser(username, name, passwordHash string) (*models.User, error) {
	var count int64
	if err := db.conn.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateUsername
	}

	user := &models.User{
		Username: username,
		Name:     name,
		Password: passwordHash,
	}
	if err := db.conn.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByID retrieves a user by ID.
func (db *DB) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := db.conn.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username.
func (db *DB) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := db.conn.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUser persists changes to an existing user. Renaming onto a taken
// username fails with ErrDuplicateUsername.
func (db *DB) UpdateUser(user *models.User) error {
	var count int64
	if err := db.conn.Model(&models.User{}).
		Where("username = ? AND id <> ?", user.Username, user.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperrors.ErrDuplicateUsername
	}
	return db.conn.Save(user).Error
}

// DeleteUser removes a user together with all owned transactions and
// sessions.
func (db *DB) DeleteUser(id uint) error {
	return db.conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.Income{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Outcome{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Session{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
}

// UserCount returns the number of registered users.
func (db *DB) UserCount() (int64, error) {
	var count int64
	err := db.conn.Model(&models.User{}).Count(&count).Error
	return count, err
}

// CreateIncome inserts an income record for the given user. A zero date
// defaults to today.
func (db *DB) CreateIncome(userID uint, amount float64, typ models.IncomeType, description string, date time.Time) (*models.Income, error) {
	if date.IsZero() {
		date = time.Now()
	}
	income := &models.Income{
		UserID:      userID,
		Amount:      amount,
		Type:        typ,
		Description: description,
		Date:        date,
	}
	if err := db.conn.Create(income).Error; err != nil {
		return nil, err
	}
	return income, nil
}

// GetIncome retrieves an income record by id, scoped to its owner.
func (db *DB) GetIncome(id, userID uint) (*models.Income, error) {
	var income models.Income
	if err := db.conn.Where("id = ? AND user_id = ?", id, userID).First(&income).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, err
	}
	return &income, nil
}

// UpdateIncome persists changes to an existing income record.
func (db *DB) UpdateIncome(income *models.Income) error {
	return db.conn.Save(income).Error
}

// DeleteIncome removes an income record by id, scoped to its owner.
func (db *DB) DeleteIncome(id, userID uint) error {
	result := db.conn.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Income{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// ListIncomes retrieves all income records for a user, newest first.
func (db *DB) ListIncomes(userID uint) ([]models.Income, error) {
	var incomes []models.Income
	err := db.conn.Where("user_id = ?", userID).Order("date DESC, id DESC").Find(&incomes).Error
	return incomes, err
}

// TotalIncome returns the sum of a user's income amounts; zero when the user
// has none.
func (db *DB) TotalIncome(userID uint) (float64, error) {
	var total float64
	err := db.conn.Model(&models.Income{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// CreateOutcome inserts an outcome record for the given user. A zero date
// defaults to today.
func (db *DB) CreateOutcome(userID uint, amount float64, typ models.OutcomeType, description string, date time.Time) (*models.Outcome, error) {
	if date.IsZero() {
		date = time.Now()
	}
	outcome := &models.Outcome{
		UserID:      userID,
		Amount:      amount,
		Type:        typ,
		Description: description,
		Date:        date,
	}
	if err := db.conn.Create(outcome).Error; err != nil {
		return nil, err
	}
	return outcome, nil
}

// GetOutcome retrieves an outcome record by id, scoped to its owner.
func (db *DB) GetOutcome(id, userID uint) (*models.Outcome, error) {
	var outcome models.Outcome
	if err := db.conn.Where("id = ? AND user_id = ?", id, userID).First(&outcome).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, err
	}
	return &outcome, nil
}

// UpdateOutcome persists changes to an existing outcome record.
func (db *DB) UpdateOutcome(outcome *models.Outcome) error {
	return db.conn.Save(outcome).Error
}

// DeleteOutcome removes an outcome record by id, scoped to its owner.
func (db *DB) DeleteOutcome(id, userID uint) error {
	result := db.conn.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Outcome{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// ListOutcomes retrieves all outcome records for a user, newest first.
func (db *DB) ListOutcomes(userID uint) ([]models.Outcome, error) {
	var outcomes []models.Outcome
	err := db.conn.Where("user_id = ?", userID).Order("date DESC, id DESC").Find(&outcomes).Error
	return outcomes, err
}

// TotalOutcome returns the sum of a user's outcome amounts; zero when the
// user has none.
func (db *DB) TotalOutcome(userID uint) (float64, error) {
	var total float64
	err := db.conn.Model(&models.Outcome{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// SessionInfo holds session validation data.
type SessionInfo struct {
	User         *models.User
	LastActivity time.Time
	ExpiresAt    time.Time
}

// CreateSession creates a new session for a user.
func (db *DB) CreateSession(token string, userID uint, expiresAt time.Time) error {
	session := &models.Session{
		Token:        token,
		UserID:       userID,
		ExpiresAt:    expiresAt,
		LastActivity: time.Now(),
	}
	return db.conn.Create(session).Error
}

// ValidateSession checks a session token and returns the associated user.
func (db *DB) ValidateSession(token string) (*models.User, error) {
	info, err := db.ValidateSessionWithInfo(token)
	if err != nil {
		return nil, err
	}
	return info.User, nil
}

// ValidateSessionWithInfo checks a session token and returns session details.
func (db *DB) ValidateSessionWithInfo(token string) (*SessionInfo, error) {
	var session models.Session
	err := db.conn.Preload("User").
		Where("token = ? AND expires_at > ?", token, time.Now()).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSessionInvalid
		}
		return nil, err
	}
	return &SessionInfo{
		User:         &session.User,
		LastActivity: session.LastActivity,
		ExpiresAt:    session.ExpiresAt,
	}, nil
}

// RenewSession updates the last activity and expiry of a session.
func (db *DB) RenewSession(token string, newExpiresAt time.Time) error {
	return db.conn.Model(&models.Session{}).
		Where("token = ?", token).
		Updates(map[string]any{
			"last_activity": time.Now(),
			"expires_at":    newExpiresAt,
		}).Error
}

// DeleteSession removes a session by token.
func (db *DB) DeleteSession(token string) error {
	return db.conn.Where("token = ?", token).Delete(&models.Session{}).Error
}

// CleanExpiredSessions removes all expired sessions.
func (db *DB) CleanExpiredSessions() error {
	return db.conn.Where("expires_at <= ?", time.Now()).Delete(&models.Session{}).Error
}
