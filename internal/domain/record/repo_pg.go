package record

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/medconnect/clinic/internal/platform/db"
)

const resourceName = "Medical record"

type repoPG struct{ q db.Querier }

func NewRepoPG(q db.Querier) Repository {
	return &repoPG{q: q}
}

const recordCols = `id, patient_id, doctor_id, creation_date, visit_type, diagnosis, treatment_plan,
	allergies, vitals, lab_results, notes, updated_at`

func (r *repoPG) scanRecord(row pgx.Row) (*MedicalRecord, error) {
	var m MedicalRecord
	err := row.Scan(&m.ID, &m.PatientID, &m.DoctorID, &m.CreationDate, &m.VisitType, &m.Diagnosis,
		&m.TreatmentPlan, &m.Allergies, &m.Vitals, &m.LabResults, &m.Notes, &m.UpdatedAt)
	return &m, err
}

func (r *repoPG) collect(rows pgx.Rows, err error) ([]*MedicalRecord, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []*MedicalRecord{}
	for rows.Next() {
		m, err := r.scanRecord(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *repoPG) Create(ctx context.Context, m *MedicalRecord) error {
	created, err := r.scanRecord(r.q.QueryRow(ctx, `
		INSERT INTO medical_records (patient_id, doctor_id, visit_type, diagnosis, treatment_plan,
			allergies, vitals, lab_results, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING `+recordCols,
		m.PatientID, m.DoctorID, m.VisitType, m.Diagnosis, m.TreatmentPlan,
		m.Allergies, m.Vitals, m.LabResults, m.Notes))
	if err != nil {
		return db.WriteError(err, resourceName, nil)
	}
	*m = *created
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*MedicalRecord, error) {
	m, err := r.scanRecord(r.q.QueryRow(ctx, `SELECT `+recordCols+` FROM medical_records WHERE id = $1`, id))
	if err != nil {
		return nil, db.ReadError(err, resourceName)
	}
	return m, nil
}

func (r *repoPG) List(ctx context.Context) ([]*MedicalRecord, error) {
	return r.collect(r.q.Query(ctx,
		`SELECT `+recordCols+` FROM medical_records ORDER BY creation_date DESC, id DESC`))
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID int64) ([]*MedicalRecord, error) {
	return r.collect(r.q.Query(ctx,
		`SELECT `+recordCols+` FROM medical_records WHERE patient_id = $1 ORDER BY creation_date DESC, id DESC`,
		patientID))
}

func (r *repoPG) Update(ctx context.Context, m *MedicalRecord) error {
	updated, err := r.scanRecord(r.q.QueryRow(ctx, `
		UPDATE medical_records SET patient_id=$2, doctor_id=$3, visit_type=$4, diagnosis=$5,
			treatment_plan=$6, allergies=$7, vitals=$8, lab_results=$9, notes=$10, updated_at=NOW()
		WHERE id = $1
		RETURNING `+recordCols,
		m.ID, m.PatientID, m.DoctorID, m.VisitType, m.Diagnosis, m.TreatmentPlan,
		m.Allergies, m.Vitals, m.LabResults, m.Notes))
	if err != nil {
		return db.WriteError(err, resourceName, nil)
	}
	*m = *updated
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM medical_records WHERE id = $1`, id)
	if err != nil {
		return db.DeleteError(err, resourceName)
	}
	if tag.RowsAffected() == 0 {
		return db.ReadError(pgx.ErrNoRows, resourceName)
	}
	return nil
}
