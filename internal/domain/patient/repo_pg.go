package patient

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/medconnect/clinic/internal/platform/db"
)

const resourceName = "Patient"

type repoPG struct{ q db.Querier }

func NewRepoPG(q db.Querier) Repository {
	return &repoPG{q: q}
}

const patientCols = `id, first_name, last_name, to_char(dob, 'YYYY-MM-DD'), gender, email, phone,
	address, emergency_name, emergency_phone, created_at, updated_at`

func (r *repoPG) scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.DOB, &p.Gender, &p.Email, &p.Phone,
		&p.Address, &p.EmergencyName, &p.EmergencyPhone, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	created, err := r.scanPatient(r.q.QueryRow(ctx, `
		INSERT INTO patients (first_name, last_name, dob, gender, email, phone, address,
			emergency_name, emergency_phone)
		VALUES ($1,$2,$3::date,$4,$5,$6,$7,$8,$9)
		RETURNING `+patientCols,
		p.FirstName, p.LastName, p.DOB, p.Gender, p.Email, p.Phone, p.Address,
		p.EmergencyName, p.EmergencyPhone))
	if err != nil {
		return db.WriteError(err, resourceName, nil)
	}
	*p = *created
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Patient, error) {
	p, err := r.scanPatient(r.q.QueryRow(ctx, `SELECT `+patientCols+` FROM patients WHERE id = $1`, id))
	if err != nil {
		return nil, db.ReadError(err, resourceName)
	}
	return p, nil
}

func (r *repoPG) List(ctx context.Context) ([]*Patient, error) {
	rows, err := r.q.Query(ctx, `SELECT `+patientCols+` FROM patients ORDER BY last_name, first_name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []*Patient{}
	for rows.Next() {
		p, err := r.scanPatient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	updated, err := r.scanPatient(r.q.QueryRow(ctx, `
		UPDATE patients SET first_name=$2, last_name=$3, dob=$4::date, gender=$5, email=$6,
			phone=$7, address=$8, emergency_name=$9, emergency_phone=$10, updated_at=NOW()
		WHERE id = $1
		RETURNING `+patientCols,
		p.ID, p.FirstName, p.LastName, p.DOB, p.Gender, p.Email, p.Phone, p.Address,
		p.EmergencyName, p.EmergencyPhone))
	if err != nil {
		return db.WriteError(err, resourceName, nil)
	}
	*p = *updated
	return nil
}

// Delete fails with a conflict while records or referrals still point at
// the patient.
func (r *repoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return db.DeleteError(err, resourceName)
	}
	if tag.RowsAffected() == 0 {
		return db.ReadError(pgx.ErrNoRows, resourceName)
	}
	return nil
}
