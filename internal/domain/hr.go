package domain

import (
	"time"

	"github.com/google/uuid"
)

// Employee is the HR extension of a profile. EmployeeID is the human-readable
// badge number and must be globally unique. Removed when its profile is
// removed.
type Employee struct {
	OwnedModel
	EmployeeID string     `gorm:"type:varchar(50);not null;uniqueIndex;column:employee_id" json:"employeeId"`
	ProfileID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex;column:profile_id" json:"profileId"`
	Profile    *Profile   `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	JobTitle   string     `gorm:"type:varchar(100);column:job_title" json:"jobTitle,omitempty"`
	HireDate   *time.Time `gorm:"type:date;column:hire_date" json:"hireDate,omitempty"`
	EndDate    *time.Time `gorm:"type:date;column:end_date" json:"endDate,omitempty"`
}

// AttendanceStatus is the closed daily attendance enumeration
type AttendanceStatus string

const (
	AttendancePending AttendanceStatus = "pending"
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceHalfDay AttendanceStatus = "half_day"
	AttendanceLeave   AttendanceStatus = "leave"
	AttendanceHoliday AttendanceStatus = "holiday"
)

// IsValid checks if the AttendanceStatus is a valid enum value
func (as AttendanceStatus) IsValid() bool {
	switch as {
	case AttendancePending, AttendancePresent, AttendanceAbsent,
		AttendanceHalfDay, AttendanceLeave, AttendanceHoliday:
		return true
	}
	return false
}

// AttendanceSession is one employee's day. At most one session exists per
// employee and date. Sessions are operational data and are hard-deleted with
// their employee.
type AttendanceSession struct {
	BaseModel
	EmployeeID   uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_day;column:employee_id" json:"employeeId"`
	// references:ID pins the belongs-to: Employee's own EmployeeID badge
	// field would otherwise win the reference lookup
	Employee     *Employee        `gorm:"foreignKey:EmployeeID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Date         time.Time        `gorm:"type:date;not null;uniqueIndex:uq_attendance_day" json:"date"`
	Status       AttendanceStatus `gorm:"type:varchar(20);not null;default:'pending';index;check:status IN ('pending','present','absent','half_day','leave','holiday')" json:"status"`
	WorkedMins   int              `gorm:"not null;default:0;column:worked_mins" json:"workedMins"`
	Records      []AttendanceRecord `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"records,omitempty"`
}

// AttendanceRecordType classifies a punch within a session
type AttendanceRecordType string

const (
	RecordCheckIn     AttendanceRecordType = "check_in"
	RecordCheckOut    AttendanceRecordType = "check_out"
	RecordBreakStart  AttendanceRecordType = "break_start"
	RecordBreakEnd    AttendanceRecordType = "break_end"
	RecordManualEntry AttendanceRecordType = "manual_entry"
)

// IsValid checks if the AttendanceRecordType is a valid enum value
func (rt AttendanceRecordType) IsValid() bool {
	switch rt {
	case RecordCheckIn, RecordCheckOut, RecordBreakStart, RecordBreakEnd, RecordManualEntry:
		return true
	}
	return false
}

// AttendanceRecord is a single punch. Removed with its session.
type AttendanceRecord struct {
	BaseModel
	SessionID  uuid.UUID            `gorm:"type:uuid;not null;index;column:session_id" json:"sessionId"`
	RecordType AttendanceRecordType `gorm:"type:varchar(20);not null;column:record_type;check:record_type IN ('check_in','check_out','break_start','break_end','manual_entry')" json:"recordType"`
	OccurredAt time.Time            `gorm:"not null;column:occurred_at" json:"occurredAt"`
	Note       string               `gorm:"type:varchar(500)" json:"note,omitempty"`
}

// LeaveType classifies a leave request
type LeaveType string

const (
	LeaveSick      LeaveType = "sick"
	LeaveVacation  LeaveType = "vacation"
	LeavePersonal  LeaveType = "personal"
	LeaveMaternity LeaveType = "maternity"
	LeavePaternity LeaveType = "paternity"
	LeaveOther     LeaveType = "other"
)

// IsValid checks if the LeaveType is a valid enum value
func (lt LeaveType) IsValid() bool {
	switch lt {
	case LeaveSick, LeaveVacation, LeavePersonal, LeaveMaternity, LeavePaternity, LeaveOther:
		return true
	}
	return false
}

// LeaveStatus is the closed approval-state enumeration of a leave request
type LeaveStatus string

const (
	LeavePending   LeaveStatus = "pending"
	LeaveApproved  LeaveStatus = "approved"
	LeaveRejected  LeaveStatus = "rejected"
	LeaveCancelled LeaveStatus = "cancelled"
)

// IsValid checks if the LeaveStatus is a valid enum value
func (ls LeaveStatus) IsValid() bool {
	switch ls {
	case LeavePending, LeaveApproved, LeaveRejected, LeaveCancelled:
		return true
	}
	return false
}

// LeaveRequest is filed by a profile and optionally approved by another.
// Removed with the requesting profile; the approver reference survives
// approver removal as null.
type LeaveRequest struct {
	BaseModel
	ProfileID  uuid.UUID   `gorm:"type:uuid;not null;index;column:profile_id" json:"profileId"`
	Profile    *Profile    `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	LeaveType  LeaveType   `gorm:"type:varchar(20);not null;column:leave_type;check:leave_type IN ('sick','vacation','personal','maternity','paternity','other')" json:"leaveType"`
	Status     LeaveStatus `gorm:"type:varchar(20);not null;default:'pending';index;check:status IN ('pending','approved','rejected','cancelled')" json:"status"`
	StartDate  time.Time   `gorm:"type:date;not null;column:start_date" json:"startDate"`
	EndDate    time.Time   `gorm:"type:date;not null;column:end_date" json:"endDate"`
	Reason     string      `gorm:"type:varchar(500)" json:"reason,omitempty"`
	ApproverID *uuid.UUID  `gorm:"type:uuid;column:approver_id" json:"approverId,omitempty"`
	Approver   *Profile    `gorm:"foreignKey:ApproverID" json:"approver,omitempty"`
	DecidedAt  *time.Time  `gorm:"column:decided_at" json:"decidedAt,omitempty"`
}
