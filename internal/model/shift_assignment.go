package model

import "time"

// ShiftAssignment 排班表 对应 shift_assignments
// 同一用户同一天至多一条（uq_shift_assignments_user_date）
type ShiftAssignment struct {
	ShiftAssignmentID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"              json:"shift_assignment_id"`
	UserID            string    `gorm:"type:uuid;not null;uniqueIndex:uq_shift_assignments_user_date" json:"user_id"`
	ShiftType         string    `gorm:"type:varchar(50);not null"                                   json:"shift_type"` // Morning | Afternoon | Night ...
	ShiftDate         time.Time `gorm:"type:date;not null;uniqueIndex:uq_shift_assignments_user_date" json:"shift_date"`
	StartTime         string    `gorm:"type:varchar(10);not null"                                   json:"start_time"` // HH:MM
	EndTime           string    `gorm:"type:varchar(10);not null"                                   json:"end_time"`
	Location          string    `gorm:"type:varchar(100);not null"                                  json:"location"`
	Notes             *string   `gorm:"type:varchar(500)"                                           json:"notes,omitempty"`
	CreatedBy         *string   `gorm:"type:uuid"                                                   json:"created_by,omitempty"`
	CreatedAt         time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                          json:"created_at"`

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (ShiftAssignment) TableName() string { return "shift_assignments" }
