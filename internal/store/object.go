package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/interaction"
)

// Object represents a controllable model definition stored in the database.
type Object struct {
	ID        string
	Name      string
	Kind      string
	Config    interaction.Config
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ObjectRepository provides CRUD operations for objects.
type ObjectRepository struct {
	db *sql.DB
}

// Objects returns the object repository for this store.
func (s *Store) Objects() *ObjectRepository {
	return &ObjectRepository{db: s.db}
}

const objectColumns = `id, name, kind, scale_min, scale_max, position_clamp_x, position_clamp_y,
	rotation_smoothing, position_smoothing, scale_smoothing, created_at, updated_at`

func scanObject(row interface{ Scan(...any) error }) (*Object, error) {
	o := &Object{}
	err := row.Scan(
		&o.ID, &o.Name, &o.Kind,
		&o.Config.ScaleMin, &o.Config.ScaleMax,
		&o.Config.PositionClampX, &o.Config.PositionClampY,
		&o.Config.RotationSmoothing, &o.Config.PositionSmoothing, &o.Config.ScaleSmoothing,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Create inserts a new object into the database.
func (r *ObjectRepository) Create(o *Object) error {
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO objects (id, name, kind, scale_min, scale_max, position_clamp_x, position_clamp_y,
			rotation_smoothing, position_smoothing, scale_smoothing, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.Name, o.Kind,
		o.Config.ScaleMin, o.Config.ScaleMax,
		o.Config.PositionClampX, o.Config.PositionClampY,
		o.Config.RotationSmoothing, o.Config.PositionSmoothing, o.Config.ScaleSmoothing,
		o.CreatedAt, o.UpdatedAt,
	)
	return err
}

// GetByID retrieves an object by its ID.
func (r *ObjectRepository) GetByID(id string) (*Object, error) {
	o, err := scanObject(r.db.QueryRow(
		`SELECT `+objectColumns+` FROM objects WHERE id = ?`, id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

// List retrieves all objects ordered by creation time.
func (r *ObjectRepository) List() ([]*Object, error) {
	rows, err := r.db.Query(`SELECT ` + objectColumns + ` FROM objects ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var objects []*Object
	for rows.Next() {
		o, err := scanObject(rows)
		if err != nil {
			return nil, err
		}
		objects = append(objects, o)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return objects, nil
}

// UpdateConfig updates the interaction tuning of an existing object.
func (r *ObjectRepository) UpdateConfig(id string, cfg interaction.Config) error {
	result, err := r.db.Exec(
		`UPDATE objects SET scale_min = ?, scale_max = ?, position_clamp_x = ?, position_clamp_y = ?,
			rotation_smoothing = ?, position_smoothing = ?, scale_smoothing = ?, updated_at = ?
		 WHERE id = ?`,
		cfg.ScaleMin, cfg.ScaleMax, cfg.PositionClampX, cfg.PositionClampY,
		cfg.RotationSmoothing, cfg.PositionSmoothing, cfg.ScaleSmoothing,
		time.Now(), id,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes an object from the database by its ID.
func (r *ObjectRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM objects WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// SeedDefaults inserts the built-in objects if the table is empty.
// Returns the objects now present.
func (r *ObjectRepository) SeedDefaults() ([]*Object, error) {
	existing, err := r.List()
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing, nil
	}

	solarCfg := interaction.DefaultConfig()
	solarCfg.ScaleMin = 0.2

	defaults := []*Object{
		{ID: uuid.NewString(), Name: "Cube", Kind: "cube", Config: interaction.DefaultConfig()},
		{ID: uuid.NewString(), Name: "Sphere", Kind: "sphere", Config: interaction.DefaultConfig()},
		{ID: uuid.NewString(), Name: "Pyramid", Kind: "pyramid", Config: interaction.DefaultConfig()},
		{ID: uuid.NewString(), Name: "Solar System", Kind: "solar-system", Config: solarCfg},
	}

	for _, o := range defaults {
		if err := r.Create(o); err != nil {
			return nil, err
		}
	}

	return defaults, nil
}
