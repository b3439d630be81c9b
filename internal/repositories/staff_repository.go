package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"qr_dine_backend/internal/models"

	"github.com/google/uuid"
)

// StaffRepository defines the interface for staff and staff-session database operations.
type StaffRepository interface {
	Create(executor SQLExecutor, s *models.Staff, hashedPassword string) (string, error)
	GetByID(id string) (*models.Staff, error)
	GetByUsername(restaurantID, username string) (*models.Staff, error)
	ListByRestaurant(restaurantID string) ([]models.Staff, error)
	Update(executor SQLExecutor, s *models.Staff) error
	Delete(executor SQLExecutor, id, restaurantID string) error

	CreateSession(executor SQLExecutor, session *models.StaffSession) (string, error)
	UpdateSessionTokenHash(executor SQLExecutor, sessionID, tokenHash string) error
	GetSession(sessionID string) (*models.StaffSession, error)
	DeleteSession(executor SQLExecutor, sessionID string) error
	DeleteExpiredSessions(executor SQLExecutor) (int64, error)
}

type staffRepository struct {
	db *sql.DB
}

// NewStaffRepository creates a new instance of StaffRepository.
func NewStaffRepository(db *sql.DB) StaffRepository {
	return &staffRepository{db: db}
}

const staffColumns = `id, restaurant_id, name, username, password_hash, role,
	phone, permissions, active, created_at, updated_at`

func scanStaff(s scanner) (*models.Staff, error) {
	st := &models.Staff{}
	var permsRaw []byte
	err := s.Scan(
		&st.ID, &st.RestaurantID, &st.Name, &st.Username, &st.PasswordHash, &st.Role,
		&st.Phone, &permsRaw, &st.Active, &st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(permsRaw) > 0 {
		if err := json.Unmarshal(permsRaw, &st.Permissions); err != nil {
			return nil, fmt.Errorf("decoding permissions for staff %s: %w", st.ID, err)
		}
	}
	if st.Permissions == nil {
		st.Permissions = models.PermissionMap{}
	}
	return st, nil
}

func (r *staffRepository) Create(executor SQLExecutor, s *models.Staff, hashedPassword string) (string, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	permsRaw, err := json.Marshal(s.Permissions)
	if err != nil {
		return "", fmt.Errorf("encoding permissions: %w", err)
	}
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now
	s.PasswordHash = hashedPassword

	query := `INSERT INTO staff
	            (id, restaurant_id, name, username, password_hash, role, phone,
	             permissions, active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = executor.Exec(query,
		s.ID, s.RestaurantID, s.Name, s.Username, s.PasswordHash, s.Role, s.Phone,
		permsRaw, s.Active, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return "", classifyError(err, "creating staff member")
	}
	return s.ID, nil
}

func (r *staffRepository) GetByID(id string) (*models.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE id = $1`
	st, err := scanStaff(r.db.QueryRow(query, id))
	if err != nil {
		return nil, classifyError(err, fmt.Sprintf("getting staff %s", id))
	}
	return st, nil
}

func (r *staffRepository) GetByUsername(restaurantID, username string) (*models.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff
	          WHERE restaurant_id = $1 AND lower(username) = lower($2)`
	st, err := scanStaff(r.db.QueryRow(query, restaurantID, username))
	if err != nil {
		return nil, classifyError(err, "getting staff by username")
	}
	return st, nil
}

func (r *staffRepository) ListByRestaurant(restaurantID string) ([]models.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE restaurant_id = $1 ORDER BY name ASC`
	rows, err := r.db.Query(query, restaurantID)
	if err != nil {
		return nil, classifyError(err, "listing staff")
	}
	defer rows.Close()

	members := []models.Staff{}
	for rows.Next() {
		st, err := scanStaff(rows)
		if err != nil {
			return nil, classifyError(err, "scanning staff row")
		}
		members = append(members, *st)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(err, "iterating staff rows")
	}
	return members, nil
}

func (r *staffRepository) Update(executor SQLExecutor, s *models.Staff) error {
	permsRaw, err := json.Marshal(s.Permissions)
	if err != nil {
		return fmt.Errorf("encoding permissions: %w", err)
	}
	query := `UPDATE staff SET
	            name = $1, role = $2, phone = $3, permissions = $4, active = $5, updated_at = $6
	          WHERE id = $7 AND restaurant_id = $8`
	res, err := executor.Exec(query,
		s.Name, s.Role, s.Phone, permsRaw, s.Active, time.Now(),
		s.ID, s.RestaurantID,
	)
	if err != nil {
		return classifyError(err, fmt.Sprintf("updating staff %s", s.ID))
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *staffRepository) Delete(executor SQLExecutor, id, restaurantID string) error {
	res, err := executor.Exec(
		`DELETE FROM staff WHERE id = $1 AND restaurant_id = $2`, id, restaurantID,
	)
	if err != nil {
		return classifyError(err, fmt.Sprintf("deleting staff %s", id))
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Sessions ---

func (r *staffRepository) CreateSession(executor SQLExecutor, session *models.StaffSession) (string, error) {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	session.CreatedAt = time.Now()
	_, err := executor.Exec(
		`INSERT INTO staff_sessions (id, staff_id, token_hash, expires_at, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		session.ID, session.StaffID, session.TokenHash, session.ExpiresAt, session.CreatedAt,
	)
	if err != nil {
		return "", classifyError(err, "creating staff session")
	}
	return session.ID, nil
}

// UpdateSessionTokenHash backfills the token hash once the token, whose
// claims carry the session id, has been signed.
func (r *staffRepository) UpdateSessionTokenHash(executor SQLExecutor, sessionID, tokenHash string) error {
	res, err := executor.Exec(
		`UPDATE staff_sessions SET token_hash = $1 WHERE id = $2`, tokenHash, sessionID,
	)
	if err != nil {
		return classifyError(err, fmt.Sprintf("storing token hash for session %s", sessionID))
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *staffRepository) GetSession(sessionID string) (*models.StaffSession, error) {
	session := &models.StaffSession{}
	err := r.db.QueryRow(
		`SELECT id, staff_id, token_hash, expires_at, created_at
		 FROM staff_sessions WHERE id = $1`,
		sessionID,
	).Scan(&session.ID, &session.StaffID, &session.TokenHash, &session.ExpiresAt, &session.CreatedAt)
	if err != nil {
		return nil, classifyError(err, fmt.Sprintf("getting staff session %s", sessionID))
	}
	return session, nil
}

func (r *staffRepository) DeleteSession(executor SQLExecutor, sessionID string) error {
	res, err := executor.Exec(`DELETE FROM staff_sessions WHERE id = $1`, sessionID)
	if err != nil {
		return classifyError(err, fmt.Sprintf("deleting staff session %s", sessionID))
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *staffRepository) DeleteExpiredSessions(executor SQLExecutor) (int64, error) {
	res, err := executor.Exec(`DELETE FROM staff_sessions WHERE expires_at < now()`)
	if err != nil {
		return 0, classifyError(err, "deleting expired staff sessions")
	}
	affected, _ := res.RowsAffected()
	return affected, nil
}
