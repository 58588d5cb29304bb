package domain

import (
	"time"

	"github.com/google/uuid"
)

// Task is the kanban work item. Status and priority are open vocabularies
// validated against the enum registry, not compile-time enumerations; see the
// registry service. Position orders cards within a status column.
type Task struct {
	OwnedModel
	Title        string      `gorm:"type:varchar(200);not null;index" json:"title"`
	Description  string      `gorm:"type:text" json:"description,omitempty"`
	Status       string      `gorm:"type:varchar(50);not null;default:'todo';index" json:"status"`
	Priority     string      `gorm:"type:varchar(50);not null;default:'medium'" json:"priority"`
	Position     int         `gorm:"not null;default:0" json:"position"`
	DueDate      *time.Time  `gorm:"type:date;column:due_date" json:"dueDate,omitempty"`
	DepartmentID *uuid.UUID  `gorm:"type:uuid;index;column:department_id" json:"departmentId,omitempty"`
	Department   *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	VerticalID   *uuid.UUID  `gorm:"type:uuid;index;column:vertical_id" json:"verticalId,omitempty"`
	Vertical     *Vertical   `gorm:"foreignKey:VerticalID" json:"vertical,omitempty"`

	Assignees    []TaskAssignee `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"assignees,omitempty"`
	Subtasks     []Subtask      `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"subtasks,omitempty"`
	Deliverables []Deliverable  `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"deliverables,omitempty"`
	Attachments  []Attachment   `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"attachments,omitempty"`
}

// Subtask is a checklist item removed with its task
type Subtask struct {
	BaseModel
	TaskID uuid.UUID `gorm:"type:uuid;not null;index;column:task_id" json:"taskId"`
	Title  string    `gorm:"type:varchar(200);not null" json:"title"`
	Done   bool      `gorm:"not null;default:false" json:"done"`
}

// AssigneeRole is the role of a profile on a task
type AssigneeRole string

const (
	AssigneeRoleOwner        AssigneeRole = "owner"
	AssigneeRoleCollaborator AssigneeRole = "collaborator"
	AssigneeRoleWatcher      AssigneeRole = "watcher"
)

// IsValid checks if the AssigneeRole is a valid enum value
func (ar AssigneeRole) IsValid() bool {
	switch ar {
	case AssigneeRoleOwner, AssigneeRoleCollaborator, AssigneeRoleWatcher:
		return true
	}
	return false
}

// TaskAssignee joins a task and a profile. Unique per pair; removed with
// either parent.
type TaskAssignee struct {
	BaseModel
	TaskID    uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:uq_task_assignee;column:task_id" json:"taskId"`
	Task      *Task        `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"-"`
	ProfileID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:uq_task_assignee;column:profile_id" json:"profileId"`
	Profile   *Profile     `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	Role      AssigneeRole `gorm:"type:varchar(20);not null;default:'collaborator';check:role IN ('owner','collaborator','watcher')" json:"role"`
}

// Deliverable is an expected output of a task, removed with it
type Deliverable struct {
	BaseModel
	TaskID      uuid.UUID  `gorm:"type:uuid;not null;index;column:task_id" json:"taskId"`
	Title       string     `gorm:"type:varchar(200);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	DueDate     *time.Time `gorm:"type:date;column:due_date" json:"dueDate,omitempty"`
	Delivered   bool       `gorm:"not null;default:false" json:"delivered"`
}

// Attachment stores file metadata for a task; the bytes live in external
// object storage referenced by StoragePath. Removed with the task.
type Attachment struct {
	BaseModel
	TaskID      uuid.UUID `gorm:"type:uuid;not null;index;column:task_id" json:"taskId"`
	FileName    string    `gorm:"type:varchar(255);not null;column:file_name" json:"fileName"`
	ContentType string    `gorm:"type:varchar(100);column:content_type" json:"contentType,omitempty"`
	Size        int64     `gorm:"not null;default:0" json:"size"`
	StoragePath string    `gorm:"type:varchar(500);not null;column:storage_path" json:"storagePath"`
	UploadedBy  string    `gorm:"type:varchar(100);column:uploaded_by" json:"uploadedBy,omitempty"`
}

// Comment is a discussion entry on a task or ticket. The author is kept as the
// raw identity subject so comments survive profile removal. Removed with the
// owning entity.
type Comment struct {
	BaseModel
	EntityType string    `gorm:"type:varchar(50);not null;index:idx_comment_entity;column:entity_type" json:"entityType"`
	EntityID   uuid.UUID `gorm:"type:uuid;not null;index:idx_comment_entity;column:entity_id" json:"entityId"`
	AuthorID   string    `gorm:"type:varchar(100);not null;column:author_id" json:"authorId"`
	Body       string    `gorm:"type:text;not null" json:"body"`
}

// TicketStatus is the closed status enumeration of a support ticket
type TicketStatus string

const (
	TicketStatusNew        TicketStatus = "new"
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusWaiting    TicketStatus = "waiting"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
	TicketStatusCancelled  TicketStatus = "cancelled"
)

// IsValid checks if the TicketStatus is a valid enum value
func (ts TicketStatus) IsValid() bool {
	switch ts {
	case TicketStatusNew, TicketStatusOpen, TicketStatusInProgress,
		TicketStatusWaiting, TicketStatusResolved, TicketStatusClosed, TicketStatusCancelled:
		return true
	}
	return false
}

// TicketPriority is the closed priority enumeration of a support ticket
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "low"
	TicketPriorityMedium   TicketPriority = "medium"
	TicketPriorityHigh     TicketPriority = "high"
	TicketPriorityCritical TicketPriority = "critical"
)

// IsValid checks if the TicketPriority is a valid enum value
func (tp TicketPriority) IsValid() bool {
	switch tp {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityCritical:
		return true
	}
	return false
}

// Ticket is a support-desk item with a globally unique ticket number. The
// resolver is tracked separately from assignees and survives profile removal
// as null.
type Ticket struct {
	OwnedModel
	TicketNumber string         `gorm:"type:varchar(50);not null;uniqueIndex;column:ticket_number" json:"ticketNumber"`
	Subject      string         `gorm:"type:varchar(200);not null" json:"subject"`
	Description  string         `gorm:"type:text" json:"description,omitempty"`
	Status       TicketStatus   `gorm:"type:varchar(20);not null;default:'new';index;check:status IN ('new','open','in_progress','waiting','resolved','closed','cancelled')" json:"status"`
	Priority     TicketPriority `gorm:"type:varchar(20);not null;default:'medium';check:priority IN ('low','medium','high','critical')" json:"priority"`
	ContactID    *uuid.UUID     `gorm:"type:uuid;index;column:contact_id" json:"contactId,omitempty"`
	Contact      *Contact       `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	ResolvedByID *uuid.UUID     `gorm:"type:uuid;column:resolved_by_id" json:"resolvedById,omitempty"`
	ResolvedBy   *Profile       `gorm:"foreignKey:ResolvedByID" json:"resolvedBy,omitempty"`
	ResolvedAt   *time.Time     `gorm:"column:resolved_at" json:"resolvedAt,omitempty"`

	Assignments []TicketAssignment `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE" json:"assignments,omitempty"`
}

// TicketAssignment joins a ticket and an assignee profile. Unique per pair;
// removed with either parent.
type TicketAssignment struct {
	BaseModel
	TicketID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_ticket_assignment;column:ticket_id" json:"ticketId"`
	Ticket     *Ticket   `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE" json:"-"`
	AssigneeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_ticket_assignment;column:assignee_id" json:"assigneeId"`
	Assignee   *Profile  `gorm:"foreignKey:AssigneeID;constraint:OnDelete:CASCADE" json:"assignee,omitempty"`
}

// MessageThread groups messages, optionally linked to a lead
type MessageThread struct {
	OwnedModel
	Subject      string              `gorm:"type:varchar(200);not null" json:"subject"`
	LeadID       *uuid.UUID          `gorm:"type:uuid;index;column:lead_id" json:"leadId,omitempty"`
	Lead         *Lead               `gorm:"foreignKey:LeadID" json:"-"`
	Messages     []Message           `gorm:"foreignKey:ThreadID;constraint:OnDelete:CASCADE" json:"messages,omitempty"`
	Participants []ThreadParticipant `gorm:"foreignKey:ThreadID;constraint:OnDelete:CASCADE" json:"participants,omitempty"`
}

// ThreadParticipant joins a thread and a profile. Unique per pair; removed
// with either parent.
type ThreadParticipant struct {
	BaseModel
	ThreadID  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_thread_participant;column:thread_id" json:"threadId"`
	Thread    *MessageThread `gorm:"foreignKey:ThreadID;constraint:OnDelete:CASCADE" json:"-"`
	ProfileID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_thread_participant;column:profile_id" json:"profileId"`
	Profile   *Profile       `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}

// Message belongs to exactly one thread and one sender profile; removed with
// either.
type Message struct {
	BaseModel
	ThreadID uuid.UUID      `gorm:"type:uuid;not null;index;column:thread_id" json:"threadId"`
	Thread   *MessageThread `gorm:"foreignKey:ThreadID;constraint:OnDelete:CASCADE" json:"-"`
	SenderID uuid.UUID      `gorm:"type:uuid;not null;index;column:sender_id" json:"senderId"`
	Sender   *Profile       `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"sender,omitempty"`
	Body     string         `gorm:"type:text;not null" json:"body"`
	SentAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP;column:sent_at" json:"sentAt"`
}

// Event is a calendar entry with a mandatory organizer
type Event struct {
	OwnedModel
	Title       string     `gorm:"type:varchar(200);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	Location    string     `gorm:"type:varchar(200)" json:"location,omitempty"`
	StartsAt    time.Time  `gorm:"not null;column:starts_at" json:"startsAt"`
	EndsAt      *time.Time `gorm:"column:ends_at" json:"endsAt,omitempty"`
	OrganizerID uuid.UUID  `gorm:"type:uuid;not null;index;column:organizer_id" json:"organizerId"`
	Organizer   *Profile   `gorm:"foreignKey:OrganizerID;constraint:OnDelete:CASCADE" json:"organizer,omitempty"`
	LeadID      *uuid.UUID `gorm:"type:uuid;index;column:lead_id" json:"leadId,omitempty"`
	Lead        *Lead      `gorm:"foreignKey:LeadID" json:"-"`

	Participants []EventParticipant `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"participants,omitempty"`
}

// ResponseStatus is a participant's reply to an event invitation
type ResponseStatus string

const (
	ResponsePending   ResponseStatus = "pending"
	ResponseAccepted  ResponseStatus = "accepted"
	ResponseDeclined  ResponseStatus = "declined"
	ResponseTentative ResponseStatus = "tentative"
)

// IsValid checks if the ResponseStatus is a valid enum value
func (rs ResponseStatus) IsValid() bool {
	switch rs {
	case ResponsePending, ResponseAccepted, ResponseDeclined, ResponseTentative:
		return true
	}
	return false
}

// EventParticipant joins an event and a profile. Unique per pair; removed with
// either parent.
type EventParticipant struct {
	BaseModel
	EventID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_event_participant;column:event_id" json:"eventId"`
	Event          *Event         `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	ProfileID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_event_participant;column:profile_id" json:"profileId"`
	Profile        *Profile       `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	ResponseStatus ResponseStatus `gorm:"type:varchar(20);not null;default:'pending';column:response_status;check:response_status IN ('pending','accepted','declined','tentative')" json:"responseStatus"`
}

// Document is a shared file reference
type Document struct {
	OwnedModel
	Title       string `gorm:"type:varchar(200);not null" json:"title"`
	StoragePath string `gorm:"type:varchar(500);not null;column:storage_path" json:"storagePath"`
	MimeType    string `gorm:"type:varchar(100);column:mime_type" json:"mimeType,omitempty"`
	Size        int64  `gorm:"not null;default:0" json:"size"`
}

// DocumentAssignment shares a document with a profile. Removed with either
// parent.
type DocumentAssignment struct {
	BaseModel
	DocumentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_document_assignment;column:document_id" json:"documentId"`
	Document   *Document `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE" json:"-"`
	ProfileID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_document_assignment;column:profile_id" json:"profileId"`
	Profile    *Profile  `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	CanEdit    bool      `gorm:"not null;default:false;column:can_edit" json:"canEdit"`
}

// Notification is delivered to an external user identity
type Notification struct {
	BaseModel
	UserID     string     `gorm:"type:varchar(100);not null;index;column:user_id" json:"userId"`
	Type       string     `gorm:"type:varchar(50);not null" json:"type"`
	Title      string     `gorm:"type:varchar(200);not null" json:"title"`
	Message    string     `gorm:"type:varchar(500);not null" json:"message"`
	Read       bool       `gorm:"column:read;not null;default:false;index" json:"read"`
	ReadAt     *time.Time `gorm:"column:read_at" json:"readAt,omitempty"`
	EntityType string     `gorm:"type:varchar(50);column:entity_type" json:"entityType,omitempty"`
	EntityID   *uuid.UUID `gorm:"type:uuid;column:entity_id" json:"entityId,omitempty"`
}

// NotificationPreference opts a user in or out of a notification type. Unique
// per (user, type).
type NotificationPreference struct {
	BaseModel
	UserID           string `gorm:"type:varchar(100);not null;uniqueIndex:uq_notification_pref;column:user_id" json:"userId"`
	NotificationType string `gorm:"type:varchar(50);not null;uniqueIndex:uq_notification_pref;column:notification_type" json:"notificationType"`
	Enabled          bool   `gorm:"not null;default:true" json:"enabled"`
}
