package domain

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Profile represents an organization member. UserID is the subject issued by
// the external identity provider; credentials are never stored here.
type Profile struct {
	OwnedModel
	UserID       string      `gorm:"type:varchar(100);not null;uniqueIndex;column:user_id" json:"userId"`
	FirstName    string      `gorm:"type:varchar(100);column:first_name" json:"firstName,omitempty"`
	LastName     string      `gorm:"type:varchar(100);column:last_name" json:"lastName,omitempty"`
	DisplayName  string      `gorm:"type:varchar(200);column:display_name" json:"displayName,omitempty"`
	Email        string      `gorm:"type:varchar(255);index" json:"email,omitempty"`
	Phone        string      `gorm:"type:varchar(50)" json:"phone,omitempty"`
	AvatarURL    string      `gorm:"type:varchar(500);column:avatar_url" json:"avatarUrl,omitempty"`
	DepartmentID *uuid.UUID  `gorm:"type:uuid;index;column:department_id" json:"departmentId,omitempty"`
	Department   *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	IsActive     bool        `gorm:"not null;default:true;column:is_active" json:"isActive"`
}

// FullName returns the profile's full name, or display name when unset
func (p *Profile) FullName() string {
	if p.FirstName != "" && p.LastName != "" {
		return p.FirstName + " " + p.LastName
	}
	return p.DisplayName
}

// Department groups profiles and tasks
type Department struct {
	OwnedModel
	Name        string `gorm:"type:varchar(200);not null;index" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
}

// Team is a cross-department working group
type Team struct {
	OwnedModel
	Name         string      `gorm:"type:varchar(200);not null;index" json:"name"`
	Description  string      `gorm:"type:text" json:"description,omitempty"`
	DepartmentID *uuid.UUID  `gorm:"type:uuid;index;column:department_id" json:"departmentId,omitempty"`
	Department   *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

// Role is a named permission bundle, optionally scoped to a module
type Role struct {
	OwnedModel
	Name        string     `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	ModuleID    *uuid.UUID `gorm:"type:uuid;index;column:module_id" json:"moduleId,omitempty"`
	Module      *Module    `gorm:"foreignKey:ModuleID" json:"module,omitempty"`
}

// Permission is a grantable capability, optionally scoped to a module
type Permission struct {
	OwnedModel
	Code        string     `gorm:"type:varchar(100);not null;index" json:"code"`
	Name        string     `gorm:"type:varchar(200);not null" json:"name"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	ModuleID    *uuid.UUID `gorm:"type:uuid;index;column:module_id" json:"moduleId,omitempty"`
}

// RolePermission binds a permission to a role. Removed with its role.
type RolePermission struct {
	BaseModel
	RoleID       uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:uq_role_permission;column:role_id" json:"roleId"`
	Role         *Role       `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE" json:"-"`
	PermissionID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:uq_role_permission;column:permission_id" json:"permissionId"`
	Permission   *Permission `gorm:"foreignKey:PermissionID;constraint:OnDelete:CASCADE" json:"permission,omitempty"`
}

// UserRole binds an external user identity to a role. Removed with its role.
type UserRole struct {
	BaseModel
	UserID string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_user_role;column:user_id" json:"userId"`
	RoleID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_user_role;column:role_id" json:"roleId"`
	Role   *Role     `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE" json:"role,omitempty"`
}

// Vertical is a business-line partition scoping leads, tasks and announcements
type Vertical struct {
	OwnedModel
	Code        string `gorm:"type:varchar(50);not null;uniqueIndex" json:"code"`
	Name        string `gorm:"type:varchar(200);not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	IsActive    bool   `gorm:"not null;default:true;column:is_active" json:"isActive"`
}

// UserVertical assigns an external user identity to a vertical
type UserVertical struct {
	BaseModel
	UserID     string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_user_vertical;column:user_id" json:"userId"`
	VerticalID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_user_vertical;column:vertical_id" json:"verticalId"`
	Vertical   *Vertical `gorm:"foreignKey:VerticalID;constraint:OnDelete:CASCADE" json:"vertical,omitempty"`
}

// FieldType classifies a module field definition
type FieldType string

const (
	FieldTypeText        FieldType = "text"
	FieldTypeTextarea    FieldType = "textarea"
	FieldTypeNumber      FieldType = "number"
	FieldTypeDate        FieldType = "date"
	FieldTypeDatetime    FieldType = "datetime"
	FieldTypeBoolean     FieldType = "boolean"
	FieldTypeSelect      FieldType = "select"
	FieldTypeMultiselect FieldType = "multiselect"
	FieldTypeEmail       FieldType = "email"
	FieldTypePhone       FieldType = "phone"
	FieldTypeURL         FieldType = "url"
	FieldTypeFile        FieldType = "file"
)

// IsValid checks if the FieldType is a valid enum value
func (ft FieldType) IsValid() bool {
	switch ft {
	case FieldTypeText, FieldTypeTextarea, FieldTypeNumber, FieldTypeDate,
		FieldTypeDatetime, FieldTypeBoolean, FieldTypeSelect, FieldTypeMultiselect,
		FieldTypeEmail, FieldTypePhone, FieldTypeURL, FieldTypeFile:
		return true
	}
	return false
}

// Module defines a named extensible-record type. Records of a module carry a
// JSON payload validated against the module's field definitions at write time.
type Module struct {
	OwnedModel
	Name        string        `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Label       string        `gorm:"type:varchar(200)" json:"label,omitempty"`
	Description string        `gorm:"type:text" json:"description,omitempty"`
	Icon        string        `gorm:"type:varchar(100)" json:"icon,omitempty"`
	Fields      []ModuleField `gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE" json:"fields,omitempty"`
}

// ModuleField is a typed form-field definition belonging to a module
type ModuleField struct {
	BaseModel
	ModuleID  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_module_field_key;column:module_id" json:"moduleId"`
	Key       string         `gorm:"type:varchar(100);not null;uniqueIndex:uq_module_field_key" json:"key"`
	Label     string         `gorm:"type:varchar(200);not null" json:"label"`
	FieldType FieldType      `gorm:"type:varchar(30);not null;column:field_type;check:field_type IN ('text','textarea','number','date','datetime','boolean','select','multiselect','email','phone','url','file')" json:"fieldType"`
	Required  bool           `gorm:"not null;default:false" json:"required"`
	Options   pq.StringArray `gorm:"type:text[]" json:"options,omitempty"`
	SortOrder int            `gorm:"not null;default:0;column:sort_order" json:"sortOrder"`
}

// ModuleRecord stores one instance of an extensible record type
type ModuleRecord struct {
	OwnedModel
	ModuleID uuid.UUID      `gorm:"type:uuid;not null;index;column:module_id" json:"moduleId"`
	Module   *Module        `gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE" json:"module,omitempty"`
	Data     datatypes.JSON `gorm:"type:jsonb" json:"data"`
}

// AssignmentRole is the access role on a module record assignment
type AssignmentRole string

const (
	AssignmentRoleViewer AssignmentRole = "viewer"
	AssignmentRoleEditor AssignmentRole = "editor"
	AssignmentRoleOwner  AssignmentRole = "owner"
)

// IsValid checks if the AssignmentRole is a valid enum value
func (ar AssignmentRole) IsValid() bool {
	switch ar {
	case AssignmentRoleViewer, AssignmentRoleEditor, AssignmentRoleOwner:
		return true
	}
	return false
}

// ModuleRecordAssignment grants a profile or a team access to a record.
// Exactly one of ProfileID and TeamID must be set.
type ModuleRecordAssignment struct {
	BaseModel
	RecordID  uuid.UUID      `gorm:"type:uuid;not null;index;column:record_id" json:"recordId"`
	Record    *ModuleRecord  `gorm:"foreignKey:RecordID;constraint:OnDelete:CASCADE" json:"-"`
	ProfileID *uuid.UUID     `gorm:"type:uuid;index;column:profile_id;check:chk_assignment_target,(profile_id IS NOT NULL AND team_id IS NULL) OR (profile_id IS NULL AND team_id IS NOT NULL)" json:"profileId,omitempty"`
	Profile   *Profile       `gorm:"foreignKey:ProfileID" json:"profile,omitempty"`
	TeamID    *uuid.UUID     `gorm:"type:uuid;index;column:team_id" json:"teamId,omitempty"`
	Team      *Team          `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	Role      AssignmentRole `gorm:"type:varchar(20);not null;default:'viewer';check:role IN ('viewer','editor','owner')" json:"role"`
}

// Targets reports whether the assignment references exactly one grantee
func (a *ModuleRecordAssignment) Targets() bool {
	return (a.ProfileID != nil) != (a.TeamID != nil)
}
