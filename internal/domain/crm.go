package domain

import (
	"time"

	"github.com/google/uuid"
)

// Contact represents an individual person
type Contact struct {
	OwnedModel
	FirstName string `gorm:"type:varchar(100);not null;column:first_name" json:"firstName"`
	LastName  string `gorm:"type:varchar(100);not null;column:last_name" json:"lastName"`
	Email     string `gorm:"type:varchar(255);index" json:"email,omitempty"`
	Phone     string `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Title     string `gorm:"type:varchar(100)" json:"title,omitempty"`
	Notes     string `gorm:"type:text" json:"notes,omitempty"`
}

// FullName returns the contact's full name
func (c *Contact) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Company represents an organization in the CRM
type Company struct {
	OwnedModel
	Name      string `gorm:"type:varchar(200);not null;index" json:"name"`
	OrgNumber string `gorm:"type:varchar(20);index;column:org_number" json:"orgNumber,omitempty"`
	Website   string `gorm:"type:varchar(500)" json:"website,omitempty"`
	Industry  string `gorm:"type:varchar(100)" json:"industry,omitempty"`
	City      string `gorm:"type:varchar(100)" json:"city,omitempty"`
	Country   string `gorm:"type:varchar(100)" json:"country,omitempty"`
}

// CompanyContact links a contact to a company. Removed with either parent.
type CompanyContact struct {
	BaseModel
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_company_contact;column:company_id" json:"companyId"`
	Company   *Company  `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"-"`
	ContactID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_company_contact;column:contact_id" json:"contactId"`
	Contact   *Contact  `gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE" json:"contact,omitempty"`
	Role      string    `gorm:"type:varchar(100)" json:"role,omitempty"`
}

// LeadStatus is the closed status enumeration of a lead
type LeadStatus string

const (
	LeadStatusNew         LeadStatus = "new"
	LeadStatusContacted   LeadStatus = "contacted"
	LeadStatusQualified   LeadStatus = "qualified"
	LeadStatusProposal    LeadStatus = "proposal"
	LeadStatusNegotiation LeadStatus = "negotiation"
	LeadStatusWon         LeadStatus = "won"
	LeadStatusLost        LeadStatus = "lost"
)

// IsValid checks if the LeadStatus is a valid enum value
func (ls LeadStatus) IsValid() bool {
	switch ls {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified,
		LeadStatusProposal, LeadStatusNegotiation, LeadStatusWon, LeadStatusLost:
		return true
	}
	return false
}

// Lead is the central CRM entity. Parent references are optional and survive
// parent deletion as nulls; dependents listed in the delete policy are removed
// with the lead.
type Lead struct {
	OwnedModel
	Title       string     `gorm:"type:varchar(200);not null;index" json:"title"`
	Status      LeadStatus `gorm:"type:varchar(20);not null;default:'new';index;check:status IN ('new','contacted','qualified','proposal','negotiation','won','lost')" json:"status"`
	Probability int        `gorm:"not null;default:0;check:probability >= 0 AND probability <= 100" json:"probability"`
	Value       float64    `gorm:"type:decimal(15,2);not null;default:0" json:"value"`
	Currency    string     `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	Source      string     `gorm:"type:varchar(100)" json:"source,omitempty"`
	Notes       string     `gorm:"type:text" json:"notes,omitempty"`
	ContactID   *uuid.UUID `gorm:"type:uuid;index;column:contact_id" json:"contactId,omitempty"`
	Contact     *Contact   `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	CompanyID   *uuid.UUID `gorm:"type:uuid;index;column:company_id" json:"companyId,omitempty"`
	Company     *Company   `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	OwnerID     *uuid.UUID `gorm:"type:uuid;index;column:owner_id" json:"ownerId,omitempty"`
	Owner       *Profile   `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	VerticalID  *uuid.UUID `gorm:"type:uuid;index;column:vertical_id" json:"verticalId,omitempty"`
	Vertical    *Vertical  `gorm:"foreignKey:VerticalID" json:"vertical,omitempty"`
}

// Pipeline is an ordered set of opportunity stages
type Pipeline struct {
	OwnedModel
	Name      string  `gorm:"type:varchar(200);not null" json:"name"`
	IsDefault bool    `gorm:"not null;default:false;column:is_default" json:"isDefault"`
	Stages    []Stage `gorm:"foreignKey:PipelineID;constraint:OnDelete:CASCADE" json:"stages,omitempty"`
}

// Stage belongs to exactly one pipeline; no two stages in a pipeline share an
// order position.
type Stage struct {
	BaseModel
	PipelineID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_stage_order;column:pipeline_id" json:"pipelineId"`
	Name       string    `gorm:"type:varchar(100);not null" json:"name"`
	OrderNo    int       `gorm:"not null;uniqueIndex:uq_stage_order;column:order_no" json:"orderNo"`
	WinChance  int       `gorm:"not null;default:0;column:win_chance;check:win_chance >= 0 AND win_chance <= 100" json:"winChance"`
}

// Opportunity references exactly one lead; a lead converts to at most one
// opportunity.
type Opportunity struct {
	OwnedModel
	LeadID            uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex;column:lead_id" json:"leadId"`
	Lead              *Lead      `gorm:"foreignKey:LeadID;constraint:OnDelete:CASCADE" json:"lead,omitempty"`
	PipelineID        *uuid.UUID `gorm:"type:uuid;index;column:pipeline_id" json:"pipelineId,omitempty"`
	Pipeline          *Pipeline  `gorm:"foreignKey:PipelineID" json:"pipeline,omitempty"`
	StageID           *uuid.UUID `gorm:"type:uuid;index;column:stage_id" json:"stageId,omitempty"`
	Stage             *Stage     `gorm:"foreignKey:StageID" json:"stage,omitempty"`
	Amount            float64    `gorm:"type:decimal(15,2);not null;default:0" json:"amount"`
	ExpectedCloseDate *time.Time `gorm:"type:date;column:expected_close_date" json:"expectedCloseDate,omitempty"`
}

// Quotation is a priced proposal issued against a lead. Removed with its lead.
type Quotation struct {
	OwnedModel
	QuoteNumber string     `gorm:"type:varchar(50);not null;uniqueIndex;column:quote_number" json:"quoteNumber"`
	LeadID      uuid.UUID  `gorm:"type:uuid;not null;index;column:lead_id" json:"leadId"`
	Lead        *Lead      `gorm:"foreignKey:LeadID;constraint:OnDelete:CASCADE" json:"-"`
	Amount      float64    `gorm:"type:decimal(15,2);not null;default:0" json:"amount"`
	Currency    string     `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	ValidUntil  *time.Time `gorm:"type:date;column:valid_until" json:"validUntil,omitempty"`
	Notes       string     `gorm:"type:text" json:"notes,omitempty"`
}

// CallType classifies the direction of a call
type CallType string

const (
	CallTypeInbound  CallType = "inbound"
	CallTypeOutbound CallType = "outbound"
	CallTypeMissed   CallType = "missed"
)

// IsValid checks if the CallType is a valid enum value
func (ct CallType) IsValid() bool {
	switch ct {
	case CallTypeInbound, CallTypeOutbound, CallTypeMissed:
		return true
	}
	return false
}

// CallStatus is the closed outcome enumeration of a call
type CallStatus string

const (
	CallStatusCompleted CallStatus = "completed"
	CallStatusNoAnswer  CallStatus = "no_answer"
	CallStatusBusy      CallStatus = "busy"
	CallStatusFailed    CallStatus = "failed"
	CallStatusCancelled CallStatus = "cancelled"
)

// IsValid checks if the CallStatus is a valid enum value
func (cs CallStatus) IsValid() bool {
	switch cs {
	case CallStatusCompleted, CallStatusNoAnswer, CallStatusBusy,
		CallStatusFailed, CallStatusCancelled:
		return true
	}
	return false
}

// Call is a logged phone interaction. It survives deletion of its lead,
// contact and caller with the references set to null.
type Call struct {
	OwnedModel
	Subject         string     `gorm:"type:varchar(200)" json:"subject,omitempty"`
	CallType        CallType   `gorm:"type:varchar(20);not null;column:call_type;check:call_type IN ('inbound','outbound','missed')" json:"callType"`
	Status          CallStatus `gorm:"type:varchar(20);not null;default:'completed';check:status IN ('completed','no_answer','busy','failed','cancelled')" json:"status"`
	LeadID          *uuid.UUID `gorm:"type:uuid;index;column:lead_id" json:"leadId,omitempty"`
	Lead            *Lead      `gorm:"foreignKey:LeadID" json:"-"`
	ContactID       *uuid.UUID `gorm:"type:uuid;index;column:contact_id" json:"contactId,omitempty"`
	Contact         *Contact   `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	CallerID        *uuid.UUID `gorm:"type:uuid;index;column:caller_id" json:"callerId,omitempty"`
	Caller          *Profile   `gorm:"foreignKey:CallerID" json:"caller,omitempty"`
	StartedAt       *time.Time `gorm:"column:started_at" json:"startedAt,omitempty"`
	DurationSeconds int        `gorm:"not null;default:0;column:duration_seconds" json:"durationSeconds"`
	Notes           []CallNote `gorm:"foreignKey:CallID;constraint:OnDelete:CASCADE" json:"notes,omitempty"`
}

// CallNoteType classifies a note attached to a call
type CallNoteType string

const (
	CallNoteGeneral     CallNoteType = "general"
	CallNoteTranscript  CallNoteType = "transcript"
	CallNoteSummary     CallNoteType = "summary"
	CallNoteActionItems CallNoteType = "action_items"
)

// IsValid checks if the CallNoteType is a valid enum value
func (nt CallNoteType) IsValid() bool {
	switch nt {
	case CallNoteGeneral, CallNoteTranscript, CallNoteSummary, CallNoteActionItems:
		return true
	}
	return false
}

// CallNote belongs to exactly one call and is removed with it
type CallNote struct {
	BaseModel
	CallID   uuid.UUID    `gorm:"type:uuid;not null;index;column:call_id" json:"callId"`
	NoteType CallNoteType `gorm:"type:varchar(20);not null;default:'general';column:note_type;check:note_type IN ('general','transcript','summary','action_items')" json:"noteType"`
	Body     string       `gorm:"type:text;not null" json:"body"`
}

// ProductCollection groups products for merchandising
type ProductCollection struct {
	OwnedModel
	Name        string `gorm:"type:varchar(200);not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
}

// Product is a sellable item with a globally unique SKU
type Product struct {
	OwnedModel
	SKU          string             `gorm:"type:varchar(100);not null;uniqueIndex;column:sku" json:"sku"`
	Name         string             `gorm:"type:varchar(200);not null;index" json:"name"`
	Description  string             `gorm:"type:text" json:"description,omitempty"`
	Price        float64            `gorm:"type:decimal(15,2);not null;default:0" json:"price"`
	Currency     string             `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	CollectionID *uuid.UUID         `gorm:"type:uuid;index;column:collection_id" json:"collectionId,omitempty"`
	Collection   *ProductCollection `gorm:"foreignKey:CollectionID" json:"collection,omitempty"`
	Variants     []ProductVariant   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`
}

// ProductVariant is a concrete purchasable variation of a product. Removed
// with its product.
type ProductVariant struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index;column:product_id" json:"productId"`
	SKU       string    `gorm:"type:varchar(100);not null;uniqueIndex;column:sku" json:"sku"`
	Name      string    `gorm:"type:varchar(200);not null" json:"name"`
	Price     float64   `gorm:"type:decimal(15,2);not null;default:0" json:"price"`
	Stock     int       `gorm:"not null;default:0" json:"stock"`
}

// StatusHistory is an append-only record of status transitions on leads,
// tasks and tickets. Removed with its owning entity.
type StatusHistory struct {
	BaseModel
	EntityType string    `gorm:"type:varchar(50);not null;index:idx_status_history_entity;column:entity_type" json:"entityType"`
	EntityID   uuid.UUID `gorm:"type:uuid;not null;index:idx_status_history_entity;column:entity_id" json:"entityId"`
	FromStatus *string   `gorm:"type:varchar(50);column:from_status" json:"fromStatus,omitempty"`
	ToStatus   string    `gorm:"type:varchar(50);not null;column:to_status" json:"toStatus"`
	ChangedBy  string    `gorm:"type:varchar(100);column:changed_by" json:"changedBy,omitempty"`
	Note       string    `gorm:"type:text" json:"note,omitempty"`
}

// TableName overrides the default pluralization
func (StatusHistory) TableName() string {
	return "status_history"
}
