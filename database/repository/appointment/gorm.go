// File: database/repository/appointment/gorm.go
package appointmentRepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sapdoc/models"
	"sapdoc/utils"
)

// orderByDateTime quotes its columns; "time" is a keyword in postgres.
var orderByDateTime = clause.OrderBy{Columns: []clause.OrderByColumn{
	{Column: clause.Column{Name: "date"}},
	{Column: clause.Column{Name: "time"}},
}}

type gormAppointmentRepo struct {
	db *gorm.DB
}

// NewGormAppointmentRepo constructs an AppointmentRepository on a relational database.
func NewGormAppointmentRepo(db *gorm.DB) AppointmentRepository {
	return &gormAppointmentRepo{db: db}
}

func (r *gormAppointmentRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*utils.StoreCallTimeout)
	defer cancel()
	return wrap("migrate appointments", r.db.WithContext(ctx).AutoMigrate(&models.Appointment{}))
}

func (r *gormAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreCallTimeout)
	defer cancel()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Appointment{}).Where("slot_id = ?", appt.SlotID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrSlotTaken
		}
		return tx.Create(appt).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrSlotTaken
	}
	return wrap("create appointment", err)
}

func (r *gormAppointmentRepo) GetBySlotID(ctx context.Context, slotID string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreCallTimeout)
	defer cancel()

	var appt models.Appointment
	err := r.db.WithContext(ctx).Where("slot_id = ?", slotID).First(&appt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrap("get appointment", err)
	}
	return &appt, nil
}

func (r *gormAppointmentRepo) DeleteBySlotID(ctx context.Context, slotID string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreCallTimeout)
	defer cancel()

	var appt models.Appointment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("slot_id = ?", slotID).First(&appt).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		res := tx.Where("slot_id = ?", slotID).Delete(&models.Appointment{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, wrap("delete appointment", err)
	}
	return &appt, nil
}

func (r *gormAppointmentRepo) ListByDateRange(ctx context.Context, from, to string) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreCallTimeout)
	defer cancel()

	var appts []models.Appointment
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Order(orderByDateTime).
		Find(&appts).Error
	if err != nil {
		return nil, wrap("list appointments by date", err)
	}
	return appts, nil
}

func (r *gormAppointmentRepo) ListAll(ctx context.Context) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreCallTimeout)
	defer cancel()

	var appts []models.Appointment
	if err := r.db.WithContext(ctx).Order(orderByDateTime).Find(&appts).Error; err != nil {
		return nil, wrap("list appointments", err)
	}
	return appts, nil
}

func (r *gormAppointmentRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreCallTimeout)
	defer cancel()

	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Appointment{}).Count(&n).Error; err != nil {
		return 0, wrap("count appointments", err)
	}
	return n, nil
}

func (r *gormAppointmentRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
