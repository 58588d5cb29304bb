package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Request bodies. Pointer fields on update requests distinguish "leave
// unchanged" from "set to zero value"; pointer reference fields on both kinds
// allow explicit nulling.

// ListParams are the common pagination and search query parameters
type ListParams struct {
	Page           int    `json:"page"`
	PageSize       int    `json:"pageSize"`
	Search         string `json:"search,omitempty"`
	IncludeDeleted bool   `json:"includeDeleted,omitempty"`
}

// Normalize clamps paging values into their allowed ranges
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 25
	}
	if p.PageSize > 200 {
		p.PageSize = 200
	}
}

// Offset returns the row offset for the current page
func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PagedResponse wraps a list payload with paging metadata
type PagedResponse[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalCount int64 `json:"totalCount"`
}

// NewPagedResponse assembles a PagedResponse from a query result
func NewPagedResponse[T any](items []T, params ListParams, total int64) *PagedResponse[T] {
	if items == nil {
		items = []T{}
	}
	return &PagedResponse[T]{
		Items:      items,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalCount: total,
	}
}

type CreateContactRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string `json:"phone,omitempty" validate:"max=50"`
	Title     string `json:"title,omitempty" validate:"max=100"`
	Notes     string `json:"notes,omitempty"`
}

type UpdateContactRequest struct {
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName,omitempty" validate:"omitempty,max=100"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Title     *string `json:"title,omitempty" validate:"omitempty,max=100"`
	Notes     *string `json:"notes,omitempty"`
}

type CreateCompanyRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	OrgNumber string `json:"orgNumber,omitempty" validate:"max=20"`
	Website   string `json:"website,omitempty" validate:"omitempty,url,max=500"`
	Industry  string `json:"industry,omitempty" validate:"max=100"`
	City      string `json:"city,omitempty" validate:"max=100"`
	Country   string `json:"country,omitempty" validate:"max=100"`
}

type UpdateCompanyRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,max=200"`
	OrgNumber *string `json:"orgNumber,omitempty" validate:"omitempty,max=20"`
	Website   *string `json:"website,omitempty" validate:"omitempty,url,max=500"`
	Industry  *string `json:"industry,omitempty" validate:"omitempty,max=100"`
	City      *string `json:"city,omitempty" validate:"omitempty,max=100"`
	Country   *string `json:"country,omitempty" validate:"omitempty,max=100"`
}

type LinkCompanyContactRequest struct {
	ContactID uuid.UUID `json:"contactId" validate:"required"`
	Role      string    `json:"role,omitempty" validate:"max=100"`
}

type CreateLeadRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Status      LeadStatus `json:"status,omitempty"`
	Probability int        `json:"probability" validate:"min=0,max=100"`
	Value       float64    `json:"value" validate:"min=0"`
	Currency    string     `json:"currency,omitempty" validate:"omitempty,len=3"`
	Source      string     `json:"source,omitempty" validate:"max=100"`
	Notes       string     `json:"notes,omitempty"`
	ContactID   *uuid.UUID `json:"contactId,omitempty"`
	CompanyID   *uuid.UUID `json:"companyId,omitempty"`
	OwnerID     *uuid.UUID `json:"ownerId,omitempty"`
	VerticalID  *uuid.UUID `json:"verticalId,omitempty"`
}

type UpdateLeadRequest struct {
	Title       *string     `json:"title,omitempty" validate:"omitempty,max=200"`
	Status      *LeadStatus `json:"status,omitempty"`
	Probability *int        `json:"probability,omitempty" validate:"omitempty,min=0,max=100"`
	Value       *float64    `json:"value,omitempty" validate:"omitempty,min=0"`
	Currency    *string     `json:"currency,omitempty" validate:"omitempty,len=3"`
	Source      *string     `json:"source,omitempty" validate:"omitempty,max=100"`
	Notes       *string     `json:"notes,omitempty"`
	ContactID   *uuid.UUID  `json:"contactId,omitempty"`
	CompanyID   *uuid.UUID  `json:"companyId,omitempty"`
	OwnerID     *uuid.UUID  `json:"ownerId,omitempty"`
	VerticalID  *uuid.UUID  `json:"verticalId,omitempty"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,max=50"`
	Note   string `json:"note,omitempty" validate:"max=500"`
}

type ConvertLeadRequest struct {
	PipelineID *uuid.UUID `json:"pipelineId,omitempty"`
	StageID    *uuid.UUID `json:"stageId,omitempty"`
	Amount     float64    `json:"amount" validate:"min=0"`
}

type CreateQuotationRequest struct {
	LeadID     uuid.UUID  `json:"leadId" validate:"required"`
	Amount     float64    `json:"amount" validate:"min=0"`
	Currency   string     `json:"currency,omitempty" validate:"omitempty,len=3"`
	ValidUntil *time.Time `json:"validUntil,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}

type CreatePipelineRequest struct {
	Name      string               `json:"name" validate:"required,max=200"`
	IsDefault bool                 `json:"isDefault"`
	Stages    []CreateStageRequest `json:"stages,omitempty" validate:"dive"`
}

type CreateStageRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	OrderNo   int    `json:"orderNo" validate:"min=0"`
	WinChance int    `json:"winChance" validate:"min=0,max=100"`
}

type CreateCallRequest struct {
	Subject         string     `json:"subject,omitempty" validate:"max=200"`
	CallType        CallType   `json:"callType" validate:"required"`
	Status          CallStatus `json:"status,omitempty"`
	LeadID          *uuid.UUID `json:"leadId,omitempty"`
	ContactID       *uuid.UUID `json:"contactId,omitempty"`
	CallerID        *uuid.UUID `json:"callerId,omitempty"`
	StartedAt       *time.Time `json:"startedAt,omitempty"`
	DurationSeconds int        `json:"durationSeconds" validate:"min=0"`
}

type CreateCallNoteRequest struct {
	NoteType CallNoteType `json:"noteType,omitempty"`
	Body     string       `json:"body" validate:"required"`
}

type CreateProductRequest struct {
	SKU          string     `json:"sku" validate:"required,max=100"`
	Name         string     `json:"name" validate:"required,max=200"`
	Description  string     `json:"description,omitempty"`
	Price        float64    `json:"price" validate:"min=0"`
	Currency     string     `json:"currency,omitempty" validate:"omitempty,len=3"`
	CollectionID *uuid.UUID `json:"collectionId,omitempty"`
}

type CreateProductVariantRequest struct {
	SKU   string  `json:"sku" validate:"required,max=100"`
	Name  string  `json:"name" validate:"required,max=200"`
	Price float64 `json:"price" validate:"min=0"`
	Stock int     `json:"stock" validate:"min=0"`
}

type CreateTaskRequest struct {
	Title        string      `json:"title" validate:"required,max=200"`
	Description  string      `json:"description,omitempty"`
	Status       string      `json:"status,omitempty" validate:"max=50"`
	Priority     string      `json:"priority,omitempty" validate:"max=50"`
	DueDate      *time.Time  `json:"dueDate,omitempty"`
	DepartmentID *uuid.UUID  `json:"departmentId,omitempty"`
	VerticalID   *uuid.UUID  `json:"verticalId,omitempty"`
	AssigneeIDs  []uuid.UUID `json:"assigneeIds,omitempty"`
}

type UpdateTaskRequest struct {
	Title        *string    `json:"title,omitempty" validate:"omitempty,max=200"`
	Description  *string    `json:"description,omitempty"`
	Priority     *string    `json:"priority,omitempty" validate:"omitempty,max=50"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	DepartmentID *uuid.UUID `json:"departmentId,omitempty"`
	VerticalID   *uuid.UUID `json:"verticalId,omitempty"`
}

// MoveTaskRequest repositions a task on the board. Position is the zero-based
// slot within the target status column.
type MoveTaskRequest struct {
	Status   string `json:"status" validate:"required,max=50"`
	Position int    `json:"position" validate:"min=0"`
}

type AssignTaskRequest struct {
	ProfileID uuid.UUID    `json:"profileId" validate:"required"`
	Role      AssigneeRole `json:"role,omitempty"`
}

type CreateSubtaskRequest struct {
	Title string `json:"title" validate:"required,max=200"`
}

type CreateDeliverableRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

type CreateCommentRequest struct {
	Body string `json:"body" validate:"required"`
}

type CreateTicketRequest struct {
	Subject     string         `json:"subject" validate:"required,max=200"`
	Description string         `json:"description,omitempty"`
	Priority    TicketPriority `json:"priority,omitempty"`
	ContactID   *uuid.UUID     `json:"contactId,omitempty"`
	AssigneeIDs []uuid.UUID    `json:"assigneeIds,omitempty"`
}

type UpdateTicketRequest struct {
	Subject     *string         `json:"subject,omitempty" validate:"omitempty,max=200"`
	Description *string         `json:"description,omitempty"`
	Priority    *TicketPriority `json:"priority,omitempty"`
	ContactID   *uuid.UUID      `json:"contactId,omitempty"`
}

type ResolveTicketRequest struct {
	ResolvedByID uuid.UUID `json:"resolvedById" validate:"required"`
	Note         string    `json:"note,omitempty" validate:"max=500"`
}

type CreateThreadRequest struct {
	Subject        string      `json:"subject" validate:"required,max=200"`
	LeadID         *uuid.UUID  `json:"leadId,omitempty"`
	ParticipantIDs []uuid.UUID `json:"participantIds,omitempty"`
}

type PostMessageRequest struct {
	SenderID uuid.UUID `json:"senderId" validate:"required"`
	Body     string    `json:"body" validate:"required"`
}

type CreateEventRequest struct {
	Title          string      `json:"title" validate:"required,max=200"`
	Description    string      `json:"description,omitempty"`
	Location       string      `json:"location,omitempty" validate:"max=200"`
	StartsAt       time.Time   `json:"startsAt" validate:"required"`
	EndsAt         *time.Time  `json:"endsAt,omitempty"`
	OrganizerID    uuid.UUID   `json:"organizerId" validate:"required"`
	LeadID         *uuid.UUID  `json:"leadId,omitempty"`
	ParticipantIDs []uuid.UUID `json:"participantIds,omitempty"`
}

type RespondEventRequest struct {
	ResponseStatus ResponseStatus `json:"responseStatus" validate:"required"`
}

type CreateProfileRequest struct {
	UserID       string     `json:"userId" validate:"required,max=100"`
	FirstName    string     `json:"firstName,omitempty" validate:"max=100"`
	LastName     string     `json:"lastName,omitempty" validate:"max=100"`
	DisplayName  string     `json:"displayName,omitempty" validate:"max=200"`
	Email        string     `json:"email,omitempty" validate:"omitempty,email"`
	Phone        string     `json:"phone,omitempty" validate:"max=50"`
	DepartmentID *uuid.UUID `json:"departmentId,omitempty"`
}

type UpdateProfileRequest struct {
	FirstName    *string    `json:"firstName,omitempty" validate:"omitempty,max=100"`
	LastName     *string    `json:"lastName,omitempty" validate:"omitempty,max=100"`
	DisplayName  *string    `json:"displayName,omitempty" validate:"omitempty,max=200"`
	Email        *string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone        *string    `json:"phone,omitempty" validate:"omitempty,max=50"`
	AvatarURL    *string    `json:"avatarUrl,omitempty" validate:"omitempty,url,max=500"`
	DepartmentID *uuid.UUID `json:"departmentId,omitempty"`
	IsActive     *bool      `json:"isActive,omitempty"`
}

type CreateRoleRequest struct {
	Name          string      `json:"name" validate:"required,max=100"`
	Description   string      `json:"description,omitempty"`
	ModuleID      *uuid.UUID  `json:"moduleId,omitempty"`
	PermissionIDs []uuid.UUID `json:"permissionIds,omitempty"`
}

type AssignRoleRequest struct {
	UserID string `json:"userId" validate:"required,max=100"`
}

type CreateVerticalRequest struct {
	Code        string `json:"code" validate:"required,max=50"`
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description,omitempty"`
}

type CreateModuleRequest struct {
	Name        string                     `json:"name" validate:"required,max=100"`
	Label       string                     `json:"label,omitempty" validate:"max=200"`
	Description string                     `json:"description,omitempty"`
	Icon        string                     `json:"icon,omitempty" validate:"max=100"`
	Fields      []CreateModuleFieldRequest `json:"fields,omitempty" validate:"dive"`
}

type CreateModuleFieldRequest struct {
	Key       string    `json:"key" validate:"required,max=100"`
	Label     string    `json:"label" validate:"required,max=200"`
	FieldType FieldType `json:"fieldType" validate:"required"`
	Required  bool      `json:"required"`
	Options   []string  `json:"options,omitempty"`
	SortOrder int       `json:"sortOrder"`
}

type CreateModuleRecordRequest struct {
	Data datatypes.JSON `json:"data" validate:"required"`
}

type AssignModuleRecordRequest struct {
	ProfileID *uuid.UUID     `json:"profileId,omitempty"`
	TeamID    *uuid.UUID     `json:"teamId,omitempty"`
	Role      AssignmentRole `json:"role,omitempty"`
}

type CreateEmployeeRequest struct {
	EmployeeID string     `json:"employeeId" validate:"required,max=50"`
	ProfileID  uuid.UUID  `json:"profileId" validate:"required"`
	JobTitle   string     `json:"jobTitle,omitempty" validate:"max=100"`
	HireDate   *time.Time `json:"hireDate,omitempty"`
}

type PunchRequest struct {
	RecordType AttendanceRecordType `json:"recordType" validate:"required"`
	OccurredAt *time.Time           `json:"occurredAt,omitempty"`
	Note       string               `json:"note,omitempty" validate:"max=500"`
}

type CreateLeaveRequest struct {
	LeaveType LeaveType `json:"leaveType" validate:"required"`
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
	Reason    string    `json:"reason,omitempty" validate:"max=500"`
}

type DecideLeaveRequest struct {
	Status     LeaveStatus `json:"status" validate:"required"`
	ApproverID uuid.UUID   `json:"approverId" validate:"required"`
}

type CreateVaultDocumentRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	StoragePath string     `json:"storagePath" validate:"required,max=500"`
	MimeType    string     `json:"mimeType,omitempty" validate:"max=100"`
	CompanyID   *uuid.UUID `json:"companyId,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

type CreateVaultPasswordRequest struct {
	Title              string     `json:"title" validate:"required,max=200"`
	Username           string     `json:"username,omitempty" validate:"max=200"`
	PasswordCiphertext string     `json:"passwordCiphertext" validate:"required"`
	URL                string     `json:"url,omitempty" validate:"omitempty,url,max=500"`
	CompanyID          *uuid.UUID `json:"companyId,omitempty"`
	Notes              string     `json:"notes,omitempty"`
}

type CreateVaultCardRequest struct {
	Title            string     `json:"title" validate:"required,max=200"`
	CardholderName   string     `json:"cardholderName,omitempty" validate:"max=200"`
	NumberCiphertext string     `json:"numberCiphertext" validate:"required"`
	LastFour         string     `json:"lastFour,omitempty" validate:"omitempty,len=4,numeric"`
	ExpiryMonth      int        `json:"expiryMonth,omitempty" validate:"omitempty,min=1,max=12"`
	ExpiryYear       int        `json:"expiryYear,omitempty" validate:"omitempty,min=2000"`
	CompanyID        *uuid.UUID `json:"companyId,omitempty"`
}

type CreateSubscriptionRequest struct {
	Name            string       `json:"name" validate:"required,max=200"`
	Vendor          string       `json:"vendor,omitempty" validate:"max=200"`
	AutoRenewal     AutoRenewal  `json:"autoRenewal,omitempty"`
	BillingCycle    BillingCycle `json:"billingCycle,omitempty"`
	Cost            float64      `json:"cost" validate:"min=0"`
	Currency        string       `json:"currency,omitempty" validate:"omitempty,len=3"`
	StartDate       *time.Time   `json:"startDate,omitempty"`
	EndDate         *time.Time   `json:"endDate,omitempty"`
	OwnerID         *uuid.UUID   `json:"ownerId,omitempty"`
	TeamID          *uuid.UUID   `json:"teamId,omitempty"`
	VendorContactID *uuid.UUID   `json:"vendorContactId,omitempty"`
}

type AddSubscriptionUserRequest struct {
	ProfileID   uuid.UUID   `json:"profileId" validate:"required"`
	AccessLevel AccessLevel `json:"accessLevel,omitempty"`
}

type RenewSubscriptionRequest struct {
	PeriodEnd *time.Time `json:"periodEnd,omitempty"`
	Amount    float64    `json:"amount" validate:"min=0"`
	Note      string     `json:"note,omitempty" validate:"max=500"`
}

type CreateAnnouncementRequest struct {
	Title          string               `json:"title" validate:"required,max=200"`
	Body           string               `json:"body" validate:"required"`
	Type           AnnouncementType     `json:"type,omitempty"`
	Priority       AnnouncementPriority `json:"priority,omitempty"`
	TargetAudience TargetAudience       `json:"targetAudience,omitempty"`
	VerticalID     *uuid.UUID           `json:"verticalId,omitempty"`
	PublishedAt    *time.Time           `json:"publishedAt,omitempty"`
	ExpiresAt      *time.Time           `json:"expiresAt,omitempty"`
}

type CreateEnumOptionRequest struct {
	EnumType  string `json:"enumType" validate:"required,max=50"`
	Value     string `json:"value" validate:"required,max=50"`
	Label     string `json:"label,omitempty" validate:"max=100"`
	SortOrder int    `json:"sortOrder"`
}
