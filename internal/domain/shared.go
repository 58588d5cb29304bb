package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vault items are visible only to their creator. Repositories filter every
// read by the acting identity; a row belonging to someone else behaves as if
// it does not exist. Secret material arrives already encrypted and is stored
// as opaque ciphertext.

// VaultDocument is a creator-private document reference
type VaultDocument struct {
	OwnedModel
	Title       string     `gorm:"type:varchar(200);not null" json:"title"`
	StoragePath string     `gorm:"type:varchar(500);not null;column:storage_path" json:"storagePath"`
	MimeType    string     `gorm:"type:varchar(100);column:mime_type" json:"mimeType,omitempty"`
	CompanyID   *uuid.UUID `gorm:"type:uuid;index;column:company_id" json:"companyId,omitempty"`
	Company     *Company   `gorm:"foreignKey:CompanyID" json:"-"`
	Notes       string     `gorm:"type:text" json:"notes,omitempty"`
}

// VaultPassword is a creator-private credential entry
type VaultPassword struct {
	OwnedModel
	Title              string     `gorm:"type:varchar(200);not null" json:"title"`
	Username           string     `gorm:"type:varchar(200)" json:"username,omitempty"`
	PasswordCiphertext string     `gorm:"type:text;not null;column:password_ciphertext" json:"-"`
	URL                string     `gorm:"type:varchar(500)" json:"url,omitempty"`
	CompanyID          *uuid.UUID `gorm:"type:uuid;index;column:company_id" json:"companyId,omitempty"`
	Company            *Company   `gorm:"foreignKey:CompanyID" json:"-"`
	Notes              string     `gorm:"type:text" json:"notes,omitempty"`
}

// VaultCard is a creator-private payment-card entry
type VaultCard struct {
	OwnedModel
	Title            string     `gorm:"type:varchar(200);not null" json:"title"`
	CardholderName   string     `gorm:"type:varchar(200);column:cardholder_name" json:"cardholderName,omitempty"`
	NumberCiphertext string     `gorm:"type:text;not null;column:number_ciphertext" json:"-"`
	LastFour         string     `gorm:"type:varchar(4);column:last_four" json:"lastFour,omitempty"`
	ExpiryMonth      int        `gorm:"column:expiry_month;check:expiry_month >= 1 AND expiry_month <= 12" json:"expiryMonth,omitempty"`
	ExpiryYear       int        `gorm:"column:expiry_year" json:"expiryYear,omitempty"`
	CompanyID        *uuid.UUID `gorm:"type:uuid;index;column:company_id" json:"companyId,omitempty"`
	Company          *Company   `gorm:"foreignKey:CompanyID" json:"-"`
}

// AutoRenewal is the closed auto-renewal enumeration of a subscription
type AutoRenewal string

const (
	AutoRenewalEnabled   AutoRenewal = "enabled"
	AutoRenewalDisabled  AutoRenewal = "disabled"
	AutoRenewalCancelled AutoRenewal = "cancelled"
)

// IsValid checks if the AutoRenewal is a valid enum value
func (ar AutoRenewal) IsValid() bool {
	switch ar {
	case AutoRenewalEnabled, AutoRenewalDisabled, AutoRenewalCancelled:
		return true
	}
	return false
}

// BillingCycle is the closed billing-interval enumeration of a subscription
type BillingCycle string

const (
	BillingMonthly   BillingCycle = "monthly"
	BillingQuarterly BillingCycle = "quarterly"
	BillingYearly    BillingCycle = "yearly"
	BillingOneTime   BillingCycle = "one_time"
)

// IsValid checks if the BillingCycle is a valid enum value
func (bc BillingCycle) IsValid() bool {
	switch bc {
	case BillingMonthly, BillingQuarterly, BillingYearly, BillingOneTime:
		return true
	}
	return false
}

// SubscriptionStatus is the closed lifecycle enumeration of a subscription
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionPending   SubscriptionStatus = "pending"
	SubscriptionTrial     SubscriptionStatus = "trial"
)

// IsValid checks if the SubscriptionStatus is a valid enum value
func (ss SubscriptionStatus) IsValid() bool {
	switch ss {
	case SubscriptionActive, SubscriptionExpired, SubscriptionCancelled,
		SubscriptionPending, SubscriptionTrial:
		return true
	}
	return false
}

// Subscription tracks a recurring vendor service. Owner, team and vendor
// contact references survive parent deletion as nulls.
type Subscription struct {
	OwnedModel
	Name            string             `gorm:"type:varchar(200);not null;index" json:"name"`
	Vendor          string             `gorm:"type:varchar(200)" json:"vendor,omitempty"`
	Status          SubscriptionStatus `gorm:"type:varchar(20);not null;default:'active';index;check:status IN ('active','expired','cancelled','pending','trial')" json:"status"`
	AutoRenewal     AutoRenewal        `gorm:"type:varchar(20);not null;default:'disabled';column:auto_renewal;check:auto_renewal IN ('enabled','disabled','cancelled')" json:"autoRenewal"`
	BillingCycle    BillingCycle       `gorm:"type:varchar(20);not null;default:'monthly';column:billing_cycle;check:billing_cycle IN ('monthly','quarterly','yearly','one_time')" json:"billingCycle"`
	Cost            float64            `gorm:"type:decimal(15,2);not null;default:0" json:"cost"`
	Currency        string             `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	StartDate       *time.Time         `gorm:"type:date;column:start_date" json:"startDate,omitempty"`
	EndDate         *time.Time         `gorm:"type:date;column:end_date" json:"endDate,omitempty"`
	OwnerID         *uuid.UUID         `gorm:"type:uuid;index;column:owner_id" json:"ownerId,omitempty"`
	Owner           *Profile           `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	TeamID          *uuid.UUID         `gorm:"type:uuid;index;column:team_id" json:"teamId,omitempty"`
	Team            *Team              `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	VendorContactID *uuid.UUID         `gorm:"type:uuid;column:vendor_contact_id" json:"vendorContactId,omitempty"`
	VendorContact   *Contact           `gorm:"foreignKey:VendorContactID" json:"vendorContact,omitempty"`

	Renewals []SubscriptionRenewal `gorm:"foreignKey:SubscriptionID;constraint:OnDelete:CASCADE" json:"renewals,omitempty"`
	Users    []SubscriptionUser    `gorm:"foreignKey:SubscriptionID;constraint:OnDelete:CASCADE" json:"users,omitempty"`
}

// SubscriptionRenewal records one billing event. Removed with its
// subscription.
type SubscriptionRenewal struct {
	BaseModel
	SubscriptionID uuid.UUID  `gorm:"type:uuid;not null;index;column:subscription_id" json:"subscriptionId"`
	RenewedAt      time.Time  `gorm:"not null;column:renewed_at" json:"renewedAt"`
	PeriodEnd      *time.Time `gorm:"type:date;column:period_end" json:"periodEnd,omitempty"`
	Amount         float64    `gorm:"type:decimal(15,2);not null;default:0" json:"amount"`
	Note           string     `gorm:"type:varchar(500)" json:"note,omitempty"`
}

// AccessLevel is a seat's access role on a subscription
type AccessLevel string

const (
	AccessAdmin  AccessLevel = "admin"
	AccessUser   AccessLevel = "user"
	AccessViewer AccessLevel = "viewer"
)

// IsValid checks if the AccessLevel is a valid enum value
func (al AccessLevel) IsValid() bool {
	switch al {
	case AccessAdmin, AccessUser, AccessViewer:
		return true
	}
	return false
}

// SubscriptionUser is a seat on a subscription. Unique per (subscription,
// profile); removed with either parent.
type SubscriptionUser struct {
	BaseModel
	SubscriptionID uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:uq_subscription_user;column:subscription_id" json:"subscriptionId"`
	Subscription   *Subscription `gorm:"foreignKey:SubscriptionID;constraint:OnDelete:CASCADE" json:"-"`
	ProfileID      uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:uq_subscription_user;column:profile_id" json:"profileId"`
	Profile        *Profile      `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	AccessLevel    AccessLevel   `gorm:"type:varchar(20);not null;default:'user';column:access_level;check:access_level IN ('admin','user','viewer')" json:"accessLevel"`
}

// AnnouncementType classifies an announcement
type AnnouncementType string

const (
	AnnouncementGeneral     AnnouncementType = "general"
	AnnouncementPolicy      AnnouncementType = "policy"
	AnnouncementEventNotice AnnouncementType = "event"
	AnnouncementUrgent      AnnouncementType = "urgent"
)

// IsValid checks if the AnnouncementType is a valid enum value
func (at AnnouncementType) IsValid() bool {
	switch at {
	case AnnouncementGeneral, AnnouncementPolicy, AnnouncementEventNotice, AnnouncementUrgent:
		return true
	}
	return false
}

// AnnouncementPriority ranks an announcement
type AnnouncementPriority string

const (
	AnnouncementPriorityLow    AnnouncementPriority = "low"
	AnnouncementPriorityNormal AnnouncementPriority = "normal"
	AnnouncementPriorityHigh   AnnouncementPriority = "high"
)

// IsValid checks if the AnnouncementPriority is a valid enum value
func (ap AnnouncementPriority) IsValid() bool {
	switch ap {
	case AnnouncementPriorityLow, AnnouncementPriorityNormal, AnnouncementPriorityHigh:
		return true
	}
	return false
}

// TargetAudience selects who an announcement is shown to
type TargetAudience string

const (
	AudienceAll        TargetAudience = "all"
	AudienceVertical   TargetAudience = "vertical"
	AudienceDepartment TargetAudience = "department"
	AudienceManagement TargetAudience = "management"
)

// IsValid checks if the TargetAudience is a valid enum value
func (ta TargetAudience) IsValid() bool {
	switch ta {
	case AudienceAll, AudienceVertical, AudienceDepartment, AudienceManagement:
		return true
	}
	return false
}

// Announcement is a broadcast message, optionally scoped to a vertical. The
// vertical reference survives vertical deletion as null.
type Announcement struct {
	OwnedModel
	Title          string               `gorm:"type:varchar(200);not null" json:"title"`
	Body           string               `gorm:"type:text;not null" json:"body"`
	Type           AnnouncementType     `gorm:"type:varchar(20);not null;default:'general';check:type IN ('general','policy','event','urgent')" json:"type"`
	Priority       AnnouncementPriority `gorm:"type:varchar(20);not null;default:'normal';check:priority IN ('low','normal','high')" json:"priority"`
	TargetAudience TargetAudience       `gorm:"type:varchar(20);not null;default:'all';column:target_audience;check:target_audience IN ('all','vertical','department','management')" json:"targetAudience"`
	VerticalID     *uuid.UUID           `gorm:"type:uuid;index;column:vertical_id" json:"verticalId,omitempty"`
	Vertical       *Vertical            `gorm:"foreignKey:VerticalID" json:"vertical,omitempty"`
	PublishedAt    *time.Time           `gorm:"column:published_at" json:"publishedAt,omitempty"`
	ExpiresAt      *time.Time           `gorm:"column:expires_at" json:"expiresAt,omitempty"`

	Views []AnnouncementView `gorm:"foreignKey:AnnouncementID;constraint:OnDelete:CASCADE" json:"views,omitempty"`
}

// AnnouncementView records that a user has seen an announcement. Unique per
// (announcement, user); removed with its announcement.
type AnnouncementView struct {
	BaseModel
	AnnouncementID uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:uq_announcement_view;column:announcement_id" json:"announcementId"`
	Announcement   *Announcement `gorm:"foreignKey:AnnouncementID;constraint:OnDelete:CASCADE" json:"-"`
	UserID         string        `gorm:"type:varchar(100);not null;uniqueIndex:uq_announcement_view;column:user_id" json:"userId"`
	ViewedAt       time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP;column:viewed_at" json:"viewedAt"`
}

// ActivityEvent is the append-only audit trail. Events are never updated or
// deleted by application code.
type ActivityEvent struct {
	BaseModel
	ActorID    string     `gorm:"type:varchar(100);not null;index;column:actor_id" json:"actorId"`
	Verb       string     `gorm:"type:varchar(50);not null" json:"verb"`
	EntityType string     `gorm:"type:varchar(50);not null;index:idx_activity_entity;column:entity_type" json:"entityType"`
	EntityID   *uuid.UUID `gorm:"type:uuid;index:idx_activity_entity;column:entity_id" json:"entityId,omitempty"`
	Summary    string     `gorm:"type:varchar(500)" json:"summary,omitempty"`
}

// EnumOption is one allowed value of an open vocabulary such as task status.
// Unique per (enum_type, value).
type EnumOption struct {
	BaseModel
	EnumType  string `gorm:"type:varchar(50);not null;uniqueIndex:uq_enum_option;column:enum_type" json:"enumType"`
	Value     string `gorm:"type:varchar(50);not null;uniqueIndex:uq_enum_option" json:"value"`
	Label     string `gorm:"type:varchar(100)" json:"label,omitempty"`
	SortOrder int    `gorm:"not null;default:0;column:sort_order" json:"sortOrder"`
	IsActive  bool   `gorm:"not null;default:true;column:is_active" json:"isActive"`
}

// NumberSequence backs the document-number generators (tickets, quotations).
// Key is the sequence name, NextValue the next unissued number.
type NumberSequence struct {
	Key       string `gorm:"type:varchar(50);primaryKey" json:"key"`
	NextValue int64  `gorm:"not null;default:1;column:next_value" json:"nextValue"`
}
