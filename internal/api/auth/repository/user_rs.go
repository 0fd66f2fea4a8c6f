package authRepository

import (
	"ProjectPlacas/internal/api/auth"
	"ProjectPlacas/internal/entity"
	contextPkg "ProjectPlacas/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type UserDB struct {
	ID        sql.NullString `db:"id_usuario"`
	Nombre    sql.NullString `db:"nombre"`
	Apellidos sql.NullString `db:"apellidos"`
	Email     sql.NullString `db:"email"`
	Password  sql.NullString `db:"contrasena"`
	Rol       sql.NullString `db:"rol"`
	CreatedAt sql.NullTime   `db:"created_at"`
	UpdatedAt sql.NullTime   `db:"updated_at"`
}

func (r *userRepository) CreateUser(c context.Context, user entity.User) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id_usuario": user.ID,
		"nombre":     user.Nombre,
		"apellidos":  user.Apellidos,
		"email":      user.Email,
		"contrasena": user.Password,
		"rol":        user.Rol,
		"created_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryCreateUser, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateUser")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"email":      user.Email,
			}).Warn("Email already in use")
			return auth.ErrEmailAlreadyInUse
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating user")
		return err
	}

	return nil
}

func (r *userRepository) GetByID(c context.Context, id string) (entity.User, error) {
	requestID := contextPkg.GetRequestID(c)
	var row UserDB

	query, args, err := sqlx.Named(queryGetByID, map[string]interface{}{"id_usuario": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByID named query preparation err")
		return entity.User{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.User{}, auth.ErrUserNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByID execution err")
		return entity.User{}, err
	}

	return makeUser(row), nil
}

func (r *userRepository) GetByEmail(c context.Context, email string) (entity.User, error) {
	requestID := contextPkg.GetRequestID(c)
	var row UserDB

	query, args, err := sqlx.Named(queryGetByEmail, map[string]interface{}{"email": email})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByEmail named query preparation err")
		return entity.User{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.User{}, auth.ErrUserNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByEmail execution err")
		return entity.User{}, err
	}

	return makeUser(row), nil
}

func (r *userRepository) ListUsers(c context.Context) ([]entity.User, error) {
	requestID := contextPkg.GetRequestID(c)

	rows, err := r.q.QueryxContext(c, r.q.Rebind(queryListUsers))
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListUsers execution err")
		return nil, err
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		var row UserDB
		if err := rows.StructScan(&row); err != nil {
			return nil, err
		}
		users = append(users, makeUser(row))
	}

	return users, rows.Err()
}

func makeUser(row UserDB) entity.User {
	return entity.User{
		ID:        row.ID.String,
		Nombre:    row.Nombre.String,
		Apellidos: row.Apellidos.String,
		Email:     row.Email.String,
		Password:  row.Password.String,
		Rol:       row.Rol.String,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}
