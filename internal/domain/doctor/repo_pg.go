package doctor

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/medconnect/clinic/internal/platform/db"
)

const resourceName = "Doctor"

var uniqueMessages = map[string]string{
	"doctors_license_number_key": "License number already exists",
}

type repoPG struct{ q db.Querier }

func NewRepoPG(q db.Querier) Repository {
	return &repoPG{q: q}
}

const doctorCols = `id, first_name, last_name, email, phone, specialty, license_number,
	to_char(hire_date, 'YYYY-MM-DD'), created_at, updated_at`

func (r *repoPG) scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.FirstName, &d.LastName, &d.Email, &d.Phone,
		&d.Specialty, &d.LicenseNumber, &d.HireDate, &d.CreatedAt, &d.UpdatedAt)
	return &d, err
}

func (r *repoPG) Create(ctx context.Context, d *Doctor) error {
	created, err := r.scanDoctor(r.q.QueryRow(ctx, `
		INSERT INTO doctors (first_name, last_name, email, phone, specialty, license_number, hire_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7::date)
		RETURNING `+doctorCols,
		d.FirstName, d.LastName, d.Email, d.Phone, d.Specialty, d.LicenseNumber, d.HireDate))
	if err != nil {
		return db.WriteError(err, resourceName, uniqueMessages)
	}
	*d = *created
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Doctor, error) {
	d, err := r.scanDoctor(r.q.QueryRow(ctx, `SELECT `+doctorCols+` FROM doctors WHERE id = $1`, id))
	if err != nil {
		return nil, db.ReadError(err, resourceName)
	}
	return d, nil
}

func (r *repoPG) GetByLicenseNumber(ctx context.Context, license string) (*Doctor, error) {
	d, err := r.scanDoctor(r.q.QueryRow(ctx, `SELECT `+doctorCols+` FROM doctors WHERE license_number = $1`, license))
	if err != nil {
		return nil, db.ReadError(err, resourceName)
	}
	return d, nil
}

func (r *repoPG) List(ctx context.Context) ([]*Doctor, error) {
	rows, err := r.q.Query(ctx, `SELECT `+doctorCols+` FROM doctors ORDER BY last_name, first_name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []*Doctor{}
	for rows.Next() {
		d, err := r.scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, d *Doctor) error {
	updated, err := r.scanDoctor(r.q.QueryRow(ctx, `
		UPDATE doctors SET first_name=$2, last_name=$3, email=$4, phone=$5, specialty=$6,
			license_number=$7, hire_date=$8::date, updated_at=NOW()
		WHERE id = $1
		RETURNING `+doctorCols,
		d.ID, d.FirstName, d.LastName, d.Email, d.Phone, d.Specialty, d.LicenseNumber, d.HireDate))
	if err != nil {
		return db.WriteError(err, resourceName, uniqueMessages)
	}
	*d = *updated
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return db.DeleteError(err, resourceName)
	}
	if tag.RowsAffected() == 0 {
		return db.ReadError(pgx.ErrNoRows, resourceName)
	}
	return nil
}
