package user

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/medconnect/clinic/internal/platform/db"
)

const resourceName = "User"

var uniqueMessages = map[string]string{
	"users_username_key":  "Username already exists",
	"users_doctor_id_key": "Doctor profile is already linked to another account",
}

type repoPG struct{ q db.Querier }

func NewRepoPG(q db.Querier) Repository {
	return &repoPG{q: q}
}

const userCols = `id, username, password_hash, first_name, last_name, email, phone, specialty,
	license_number, doctor_id, created_at`

func (r *repoPG) scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Email,
		&u.Phone, &u.Specialty, &u.LicenseNumber, &u.DoctorID, &u.CreatedAt)
	return &u, err
}

func (r *repoPG) getOne(ctx context.Context, where string, arg interface{}) (*User, error) {
	u, err := r.scanUser(r.q.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE `+where, arg))
	if err != nil {
		return nil, db.ReadError(err, resourceName)
	}
	return u, nil
}

func (r *repoPG) Create(ctx context.Context, u *User) error {
	created, err := r.scanUser(r.q.QueryRow(ctx, `
		INSERT INTO users (username, password_hash, first_name, last_name, email, phone, specialty,
			license_number, doctor_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING `+userCols,
		u.Username, u.PasswordHash, u.FirstName, u.LastName, u.Email, u.Phone, u.Specialty,
		u.LicenseNumber, u.DoctorID))
	if err != nil {
		return db.WriteError(err, resourceName, uniqueMessages)
	}
	*u = *created
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*User, error) {
	return r.getOne(ctx, `id = $1`, id)
}

func (r *repoPG) GetByUsername(ctx context.Context, username string) (*User, error) {
	return r.getOne(ctx, `username = $1`, username)
}

// GetByDoctorID returns the account linked to the doctor.
func (r *repoPG) GetByDoctorID(ctx context.Context, doctorID int64) (*User, error) {
	return r.getOne(ctx, `doctor_id = $1 ORDER BY id LIMIT 1`, doctorID)
}

func (r *repoPG) List(ctx context.Context) ([]*User, error) {
	rows, err := r.q.Query(ctx, `SELECT `+userCols+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []*User{}
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, u)
	}
	return items, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, u *User) error {
	updated, err := r.scanUser(r.q.QueryRow(ctx, `
		UPDATE users SET password_hash=$2, first_name=$3, last_name=$4, email=$5, phone=$6,
			specialty=$7, license_number=$8, doctor_id=$9
		WHERE id = $1
		RETURNING `+userCols,
		u.ID, u.PasswordHash, u.FirstName, u.LastName, u.Email, u.Phone, u.Specialty,
		u.LicenseNumber, u.DoctorID))
	if err != nil {
		return db.WriteError(err, resourceName, uniqueMessages)
	}
	*u = *updated
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return db.DeleteError(err, resourceName)
	}
	if tag.RowsAffected() == 0 {
		return db.ReadError(pgx.ErrNoRows, resourceName)
	}
	return nil
}
