package referral

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/medconnect/clinic/internal/platform/db"
)

const resourceName = "Referral"

type repoPG struct{ q db.Querier }

func NewRepoPG(q db.Querier) Repository {
	return &repoPG{q: q}
}

const referralCols = `id, patient_id, referring_doctor_id, referred_doctor_id, date_time,
	status, notes, created_at, updated_at`

func (r *repoPG) scanReferral(row pgx.Row) (*Referral, error) {
	var ref Referral
	var status *string
	err := row.Scan(&ref.ID, &ref.PatientID, &ref.ReferringDoctorID, &ref.ReferredDoctorID,
		&ref.DateTime, &status, &ref.Notes, &ref.CreatedAt, &ref.UpdatedAt)
	if err != nil {
		return nil, err
	}
	ref.Status = NormalizeStatus(status)
	return &ref, nil
}

func (r *repoPG) Create(ctx context.Context, ref *Referral) error {
	row := r.q.QueryRow(ctx, `
		INSERT INTO referrals (patient_id, referring_doctor_id, referred_doctor_id, date_time, status, notes)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING `+referralCols,
		ref.PatientID, ref.ReferringDoctorID, ref.ReferredDoctorID, ref.DateTime, string(ref.Status), ref.Notes)
	created, err := r.scanReferral(row)
	if err != nil {
		return db.WriteError(err, resourceName, nil)
	}
	*ref = *created
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Referral, error) {
	ref, err := r.scanReferral(r.q.QueryRow(ctx, `SELECT `+referralCols+` FROM referrals WHERE id = $1`, id))
	if err != nil {
		return nil, db.ReadError(err, resourceName)
	}
	return ref, nil
}

func (r *repoPG) List(ctx context.Context) ([]*Referral, error) {
	rows, err := r.q.Query(ctx, `SELECT `+referralCols+` FROM referrals ORDER BY date_time DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []*Referral{}
	for rows.Next() {
		ref, err := r.scanReferral(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, ref)
	}
	return items, rows.Err()
}

// Update writes the mutable scheduling fields. Status is left to UpdateStatus.
func (r *repoPG) Update(ctx context.Context, ref *Referral) error {
	row := r.q.QueryRow(ctx, `
		UPDATE referrals SET date_time=$2, notes=$3, updated_at=NOW()
		WHERE id = $1
		RETURNING `+referralCols,
		ref.ID, ref.DateTime, ref.Notes)
	updated, err := r.scanReferral(row)
	if err != nil {
		return db.WriteError(err, resourceName, nil)
	}
	*ref = *updated
	return nil
}

func (r *repoPG) UpdateStatus(ctx context.Context, id int64, from, to Status, edits Edits) (*Referral, error) {
	row := r.q.QueryRow(ctx, `
		UPDATE referrals SET status=$3,
			date_time=COALESCE($4::timestamptz, date_time),
			notes=COALESCE($5::text, notes),
			updated_at=NOW()
		WHERE id = $1 AND COALESCE(status, 'pending') = $2
		RETURNING `+referralCols,
		id, string(from), string(to), edits.DateTime, edits.Notes)
	ref, err := r.scanReferral(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrStatusChanged
	}
	if err != nil {
		return nil, db.WriteError(err, resourceName, nil)
	}
	return ref, nil
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM referrals WHERE id = $1`, id)
	if err != nil {
		return db.DeleteError(err, resourceName)
	}
	if tag.RowsAffected() == 0 {
		return db.ReadError(pgx.ErrNoRows, resourceName)
	}
	return nil
}
