package model

import "gorm.io/gorm"

// Status is the lifecycle state shared by every catalog entity.
// is_active is persisted alongside it for indexed listings but is always derived
// from Status; write both through StatusColumns or a BeforeSave hook.
type Status string

const (
	StatusActive      Status = "active"
	StatusPending     Status = "pending"
	StatusDeactivated Status = "deactivated"
	StatusDeleted     Status = "deleted"
	StatusHidden      Status = "hidden"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPending, StatusDeactivated, StatusDeleted, StatusHidden:
		return true
	}
	return false
}

func (s Status) IsActive() bool {
	return s == StatusActive
}

func (s Status) IsDeleted() bool {
	return s == StatusDeleted
}

// transitions lists the lifecycle moves the catalog allows. Restore is the
// only way out of deleted and always lands in active.
var transitions = map[Status][]Status{
	StatusPending:     {StatusActive, StatusDeactivated, StatusDeleted},
	StatusActive:      {StatusDeactivated, StatusDeleted},
	StatusDeactivated: {StatusActive, StatusDeleted},
	StatusHidden:      {StatusActive, StatusDeleted},
	StatusDeleted:     {StatusActive},
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s Status) CanTransitionTo(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// StatusColumns is the column set for bulk status updates.
func StatusColumns(s Status) map[string]interface{} {
	return map[string]interface{}{
		"status":    s,
		"is_active": s.IsActive(),
	}
}

// Lifecycle is embedded by catalog entities.
type Lifecycle struct {
	Status    Status `gorm:"type:varchar(20);not null;index" json:"status"`
	IsActive  bool   `gorm:"not null;index" json:"is_active"`
	IsDeleted bool   `gorm:"-" json:"is_deleted"`
}

// SetStatus keeps the derived fields in step with s.
func (l *Lifecycle) SetStatus(s Status) {
	l.Status = s
	l.sync()
}

func (l *Lifecycle) BeforeSave(tx *gorm.DB) error {
	l.sync()
	return nil
}

func (l *Lifecycle) AfterFind(tx *gorm.DB) error {
	l.sync()
	return nil
}

func (l *Lifecycle) sync() {
	l.IsActive = l.Status.IsActive()
	l.IsDeleted = l.Status.IsDeleted()
}

// Audit is the created_by/updated_by pair stamped from the caller display name.
type Audit struct {
	CreatedBy string `gorm:"size:120" json:"created_by"`
	UpdatedBy string `gorm:"size:120" json:"updated_by"`
}
