package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/saltwind/grandline/api/internal/database"
	"github.com/saltwind/grandline/api/internal/model"
)

// UserRepository handles user account data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		CREATE user CONTENT {
			email: $email,
			name: $name,
			hash: IF $hash IS NOT NULL THEN $hash ELSE NONE END,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"email": user.Email,
		"name":  user.Name,
		"hash":  ptrToNone(user.Hash),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: email already exists", database.ErrDuplicate)
		}
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	user.ID = created.ID
	user.CreatedOn = created.CreatedOn
	user.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseUserResult(result)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM user WHERE email = $email LIMIT 1`
	vars := map[string]interface{}{"email": email}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseUserResult(result)
}

// TouchLogin stamps the user's last login time
func (r *UserRepository) TouchLogin(ctx context.Context, userID string) error {
	query := `UPDATE type::record($id) SET login_on = time::now()`
	return r.db.Execute(ctx, query, map[string]interface{}{"id": userID})
}

// UpdateName updates the user's display name
func (r *UserRepository) UpdateName(ctx context.Context, userID, name string) error {
	query := `UPDATE type::record($id) SET name = $name, updated_on = time::now()`
	vars := map[string]interface{}{
		"id":   userID,
		"name": name,
	}
	return r.db.Execute(ctx, query, vars)
}

// parseUserResult converts a SurrealDB record into a model.User
func parseUserResult(result interface{}) (*model.User, error) {
	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected user record format")
	}

	user := &model.User{}
	if id, ok := data["id"]; ok {
		user.ID = extractRecordID(id)
	}
	if email, ok := data["email"].(string); ok {
		user.Email = email
	}
	if name, ok := data["name"].(string); ok {
		user.Name = name
	}
	if hash, ok := data["hash"].(string); ok {
		user.Hash = &hash
	}
	if createdOn, ok := data["created_on"]; ok {
		user.CreatedOn = parseTime(createdOn)
	}
	if updatedOn, ok := data["updated_on"]; ok {
		user.UpdatedOn = parseTime(updatedOn)
	}
	if loginOn, ok := data["login_on"]; ok {
		if t := parseTime(loginOn); !t.IsZero() {
			user.LoginOn = &t
		}
	}
	return user, nil
}

// ptrToNone passes nil through so the query stores NONE
func ptrToNone(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
