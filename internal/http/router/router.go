package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/opscorehq/opscore-api/internal/auth"
	"github.com/opscorehq/opscore-api/internal/config"
	"github.com/opscorehq/opscore-api/internal/database"
	"github.com/opscorehq/opscore-api/internal/http/handler"
	"github.com/opscorehq/opscore-api/internal/http/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handlers bundles every HTTP handler mounted by the router
type Handlers struct {
	Contact      *handler.ContactHandler
	Company      *handler.CompanyHandler
	Lead         *handler.LeadHandler
	Pipeline     *handler.PipelineHandler
	Call         *handler.CallHandler
	Product      *handler.ProductHandler
	Task         *handler.TaskHandler
	Ticket       *handler.TicketHandler
	Thread       *handler.ThreadHandler
	Event        *handler.EventHandler
	Profile      *handler.ProfileHandler
	Org          *handler.OrgHandler
	Role         *handler.RoleHandler
	Vertical     *handler.VerticalHandler
	Module       *handler.ModuleHandler
	Employee     *handler.EmployeeHandler
	Attendance   *handler.AttendanceHandler
	Leave        *handler.LeaveHandler
	Vault        *handler.VaultHandler
	Subscription *handler.SubscriptionHandler
	Announcement *handler.AnnouncementHandler
	Notification *handler.NotificationHandler
	Document     *handler.DocumentHandler
	Activity     *handler.ActivityHandler
	Enum         *handler.EnumHandler
}

type Router struct {
	cfg            *config.Config
	logger         *zap.Logger
	db             *gorm.DB
	authMiddleware *auth.Middleware
	rateLimiter    *middleware.RateLimiter
	handlers       *Handlers
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	handlers *Handlers,
) *Router {
	return &Router{
		cfg:            cfg,
		logger:         logger,
		db:             db,
		authMiddleware: authMiddleware,
		rateLimiter:    rateLimiter,
		handlers:       handlers,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with pool stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(r.Context(), rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
				"wait_count":           stats.WaitCount,
				"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
			},
		})
	})

	// Combined readiness check
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if err := database.HealthCheck(r.Context(), rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		status := "healthy"
		code := http.StatusOK
		if !allHealthy {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		}
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": status,
			"checks": checks,
		})
	})

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)

			h := rt.handlers

			// Identity. The whole subtree keys on profileId so the
			// per-profile sub-resources can share the route prefix.
			r.Get("/me", h.Profile.Me)
			r.Route("/profiles", func(r chi.Router) {
				r.Get("/", h.Profile.List)
				r.Post("/", h.Profile.Create)
				r.Get("/{profileId}", h.Profile.Get)
				r.Put("/{profileId}", h.Profile.Update)
				r.Delete("/{profileId}", h.Profile.Delete)
				r.Get("/{profileId}/threads", h.Thread.ListForProfile)
				r.Get("/{profileId}/events", h.Event.ListForProfile)
				r.Get("/{profileId}/documents", h.Document.ListForProfile)
				r.Get("/{profileId}/employee", h.Employee.GetByProfile)
				r.Post("/{profileId}/leave", h.Leave.Request)
				r.Delete("/{profileId}/leave/{id}", h.Leave.Cancel)
			})

			// Organization
			r.Route("/departments", func(r chi.Router) {
				r.Get("/", h.Org.ListDepartments)
				r.Post("/", h.Org.CreateDepartment)
				r.Get("/{id}", h.Org.GetDepartment)
				r.Put("/{id}", h.Org.UpdateDepartment)
				r.Delete("/{id}", h.Org.DeleteDepartment)
			})
			r.Route("/teams", func(r chi.Router) {
				r.Get("/", h.Org.ListTeams)
				r.Post("/", h.Org.CreateTeam)
				r.Get("/{id}", h.Org.GetTeam)
				r.Put("/{id}", h.Org.UpdateTeam)
				r.Delete("/{id}", h.Org.DeleteTeam)
			})

			// Roles and permissions
			r.Route("/roles", func(r chi.Router) {
				r.Get("/", h.Role.List)
				r.Post("/", h.Role.Create)
				r.Get("/{id}", h.Role.Get)
				r.Put("/{id}", h.Role.Update)
				r.Delete("/{id}", h.Role.Delete)
				r.Get("/{id}/permissions", h.Role.Permissions)
				r.Post("/{id}/permissions/{permissionId}", h.Role.GrantPermission)
				r.Delete("/{id}/permissions/{permissionId}", h.Role.RevokePermission)
				r.Post("/{id}/users", h.Role.AssignUser)
				r.Delete("/{id}/users/{userId}", h.Role.UnassignUser)
			})
			r.Route("/permissions", func(r chi.Router) {
				r.Get("/", h.Role.ListPermissions)
				r.Post("/", h.Role.CreatePermission)
				r.Delete("/{id}", h.Role.DeletePermission)
			})
			r.Get("/users/{userId}/roles", h.Role.RolesForUser)
			r.Get("/users/{userId}/verticals", h.Vertical.VerticalsForUser)

			// Verticals
			r.Route("/verticals", func(r chi.Router) {
				r.Get("/", h.Vertical.List)
				r.Post("/", h.Vertical.Create)
				r.Get("/code/{code}", h.Vertical.GetByCode)
				r.Get("/{id}", h.Vertical.Get)
				r.Put("/{id}", h.Vertical.Update)
				r.Delete("/{id}", h.Vertical.Delete)
				r.Post("/{id}/users", h.Vertical.AssignUser)
				r.Delete("/{id}/users/{userId}", h.Vertical.UnassignUser)
			})

			// Extensible modules
			r.Route("/modules", func(r chi.Router) {
				r.Get("/", h.Module.List)
				r.Post("/", h.Module.Create)
				r.Get("/name/{name}", h.Module.GetByName)
				r.Get("/{id}", h.Module.Get)
				r.Put("/{id}", h.Module.Update)
				r.Delete("/{id}", h.Module.Delete)
				r.Post("/{id}/fields", h.Module.AddField)
				r.Delete("/{id}/fields/{fieldId}", h.Module.RemoveField)
				r.Get("/{id}/records", h.Module.ListRecords)
				r.Post("/{id}/records", h.Module.CreateRecord)
			})
			r.Route("/records", func(r chi.Router) {
				r.Get("/{recordId}", h.Module.GetRecord)
				r.Put("/{recordId}", h.Module.UpdateRecord)
				r.Delete("/{recordId}", h.Module.DeleteRecord)
				r.Get("/{recordId}/assignments", h.Module.RecordAssignments)
				r.Post("/{recordId}/assignments", h.Module.AssignRecord)
				r.Delete("/{recordId}/assignments/{assignmentId}", h.Module.UnassignRecord)
			})

			// CRM: contacts and companies
			r.Route("/contacts", func(r chi.Router) {
				r.Get("/", h.Contact.List)
				r.Post("/", h.Contact.Create)
				r.Get("/{id}", h.Contact.Get)
				r.Put("/{id}", h.Contact.Update)
				r.Delete("/{id}", h.Contact.Delete)
			})
			r.Route("/companies", func(r chi.Router) {
				r.Get("/", h.Company.List)
				r.Post("/", h.Company.Create)
				r.Get("/{id}", h.Company.Get)
				r.Put("/{id}", h.Company.Update)
				r.Delete("/{id}", h.Company.Delete)
				r.Get("/{id}/contacts", h.Company.ListContacts)
				r.Post("/{id}/contacts", h.Company.LinkContact)
				r.Delete("/{id}/contacts/{contactId}", h.Company.UnlinkContact)
			})

			// CRM: leads, conversions, quotations
			r.Route("/leads", func(r chi.Router) {
				r.Get("/", h.Lead.List)
				r.Post("/", h.Lead.Create)
				r.Get("/{id}", h.Lead.Get)
				r.Put("/{id}", h.Lead.Update)
				r.Delete("/{id}", h.Lead.Delete)
				r.Post("/{id}/restore", h.Lead.Restore)
				r.Post("/{id}/status", h.Lead.ChangeStatus)
				r.Get("/{id}/history", h.Lead.StatusHistory)
				r.Post("/{id}/convert", h.Lead.Convert)
				r.Get("/{id}/quotations", h.Lead.ListQuotations)
				r.Post("/{id}/quotations", h.Lead.IssueQuotation)
			})

			// CRM: pipelines and opportunities
			r.Route("/pipelines", func(r chi.Router) {
				r.Get("/", h.Pipeline.List)
				r.Post("/", h.Pipeline.Create)
				r.Get("/{id}", h.Pipeline.Get)
				r.Put("/{id}", h.Pipeline.Update)
				r.Delete("/{id}", h.Pipeline.Delete)
				r.Post("/{id}/stages", h.Pipeline.AddStage)
				r.Delete("/{id}/stages/{stageId}", h.Pipeline.RemoveStage)
			})
			r.Route("/opportunities", func(r chi.Router) {
				r.Get("/", h.Pipeline.ListOpportunities)
				r.Get("/{id}", h.Pipeline.GetOpportunity)
				r.Post("/{id}/move", h.Pipeline.MoveOpportunity)
				r.Delete("/{id}", h.Pipeline.DeleteOpportunity)
			})

			// CRM: calls
			r.Route("/calls", func(r chi.Router) {
				r.Get("/", h.Call.List)
				r.Post("/", h.Call.Create)
				r.Get("/{id}", h.Call.Get)
				r.Delete("/{id}", h.Call.Delete)
				r.Post("/{id}/notes", h.Call.AddNote)
				r.Delete("/{id}/notes/{noteId}", h.Call.RemoveNote)
			})

			// CRM: products
			r.Route("/products", func(r chi.Router) {
				r.Get("/", h.Product.List)
				r.Post("/", h.Product.Create)
				r.Get("/{id}", h.Product.Get)
				r.Put("/{id}", h.Product.Update)
				r.Delete("/{id}", h.Product.Delete)
				r.Post("/{id}/variants", h.Product.AddVariant)
				r.Delete("/{id}/variants/{variantId}", h.Product.RemoveVariant)
			})
			r.Route("/collections", func(r chi.Router) {
				r.Get("/", h.Product.ListCollections)
				r.Post("/", h.Product.CreateCollection)
				r.Delete("/{id}", h.Product.DeleteCollection)
			})

			// Kanban tasks
			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", h.Task.List)
				r.Post("/", h.Task.Create)
				r.Get("/board", h.Task.Board)
				r.Get("/{id}", h.Task.Get)
				r.Put("/{id}", h.Task.Update)
				r.Delete("/{id}", h.Task.Delete)
				r.Post("/{id}/move", h.Task.Move)
				r.Get("/{id}/history", h.Task.StatusHistory)
				r.Post("/{id}/assignees", h.Task.Assign)
				r.Delete("/{id}/assignees/{profileId}", h.Task.Unassign)
				r.Post("/{id}/subtasks", h.Task.AddSubtask)
				r.Put("/{id}/subtasks/{subtaskId}/done", h.Task.SetSubtaskDone)
				r.Delete("/{id}/subtasks/{subtaskId}", h.Task.RemoveSubtask)
				r.Post("/{id}/deliverables", h.Task.AddDeliverable)
				r.Post("/{id}/attachments", h.Task.AddAttachment)
				r.Delete("/{id}/attachments/{attachmentId}", h.Task.RemoveAttachment)
				r.Get("/{id}/comments", h.Task.Comments)
				r.Post("/{id}/comments", h.Task.Comment)
			})
			r.Delete("/comments/{commentId}", h.Task.DeleteComment)

			// Tickets
			r.Route("/tickets", func(r chi.Router) {
				r.Get("/", h.Ticket.List)
				r.Post("/", h.Ticket.Create)
				r.Get("/number/{number}", h.Ticket.GetByNumber)
				r.Get("/{id}", h.Ticket.Get)
				r.Put("/{id}", h.Ticket.Update)
				r.Delete("/{id}", h.Ticket.Delete)
				r.Post("/{id}/status", h.Ticket.ChangeStatus)
				r.Post("/{id}/resolve", h.Ticket.Resolve)
				r.Get("/{id}/history", h.Ticket.StatusHistory)
				r.Post("/{id}/assignees", h.Ticket.Assign)
				r.Delete("/{id}/assignees/{assigneeId}", h.Ticket.Unassign)
				r.Get("/{id}/comments", h.Ticket.Comments)
				r.Post("/{id}/comments", h.Ticket.Comment)
			})

			// Threads
			r.Route("/threads", func(r chi.Router) {
				r.Post("/", h.Thread.Create)
				r.Get("/{id}", h.Thread.Get)
				r.Delete("/{id}", h.Thread.Delete)
				r.Post("/{id}/participants", h.Thread.AddParticipant)
				r.Delete("/{id}/participants/{profileId}", h.Thread.RemoveParticipant)
				r.Get("/{id}/messages", h.Thread.Messages)
				r.Post("/{id}/messages", h.Thread.PostMessage)
			})

			// Events
			r.Route("/events", func(r chi.Router) {
				r.Get("/", h.Event.List)
				r.Post("/", h.Event.Create)
				r.Get("/{id}", h.Event.Get)
				r.Put("/{id}", h.Event.Update)
				r.Delete("/{id}", h.Event.Delete)
				r.Post("/{id}/participants", h.Event.Invite)
				r.Delete("/{id}/participants/{profileId}", h.Event.Uninvite)
				r.Post("/{id}/participants/{profileId}/respond", h.Event.Respond)
			})

			// Documents
			r.Route("/documents", func(r chi.Router) {
				r.Post("/", h.Document.Create)
				r.Get("/{id}", h.Document.Get)
				r.Delete("/{id}", h.Document.Delete)
				r.Post("/{id}/shares", h.Document.Share)
				r.Delete("/{id}/shares/{profileId}", h.Document.Unshare)
			})

			// Notifications
			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Put("/read-all", h.Notification.MarkAllRead)
				r.Put("/{id}/read", h.Notification.MarkRead)
				r.Get("/preferences", h.Notification.Preferences)
				r.Put("/preferences", h.Notification.SetPreference)
			})

			// HR
			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.List)
				r.Post("/", h.Employee.Create)
				r.Get("/{id}", h.Employee.Get)
				r.Put("/{id}", h.Employee.Update)
				r.Delete("/{id}", h.Employee.Delete)
				r.Post("/{id}/punch", h.Attendance.Punch)
				r.Get("/{id}/sessions", h.Attendance.Sessions)
			})
			r.Route("/attendance/sessions", func(r chi.Router) {
				r.Get("/{sessionId}", h.Attendance.GetSession)
				r.Put("/{sessionId}/status", h.Attendance.SetSessionStatus)
			})
			r.Route("/leave", func(r chi.Router) {
				r.Get("/", h.Leave.List)
				r.Get("/{id}", h.Leave.Get)
				r.Post("/{id}/decide", h.Leave.Decide)
			})

			// Vault (creator-private)
			r.Route("/vault", func(r chi.Router) {
				r.Route("/documents", func(r chi.Router) {
					r.Get("/", h.Vault.ListDocuments)
					r.Post("/", h.Vault.CreateDocument)
					r.Get("/{id}", h.Vault.GetDocument)
					r.Delete("/{id}", h.Vault.DeleteDocument)
				})
				r.Route("/passwords", func(r chi.Router) {
					r.Get("/", h.Vault.ListPasswords)
					r.Post("/", h.Vault.CreatePassword)
					r.Get("/{id}", h.Vault.GetPassword)
					r.Put("/{id}", h.Vault.UpdatePassword)
					r.Delete("/{id}", h.Vault.DeletePassword)
				})
				r.Route("/cards", func(r chi.Router) {
					r.Get("/", h.Vault.ListCards)
					r.Post("/", h.Vault.CreateCard)
					r.Get("/{id}", h.Vault.GetCard)
					r.Delete("/{id}", h.Vault.DeleteCard)
				})
			})

			// Subscriptions
			r.Route("/subscriptions", func(r chi.Router) {
				r.Get("/", h.Subscription.List)
				r.Post("/", h.Subscription.Create)
				r.Get("/{id}", h.Subscription.Get)
				r.Put("/{id}", h.Subscription.Update)
				r.Delete("/{id}", h.Subscription.Delete)
				r.Post("/{id}/status", h.Subscription.ChangeStatus)
				r.Post("/{id}/renew", h.Subscription.Renew)
				r.Post("/{id}/users", h.Subscription.AddUser)
				r.Delete("/{id}/users/{profileId}", h.Subscription.RemoveUser)
			})

			// Announcements
			r.Route("/announcements", func(r chi.Router) {
				r.Get("/", h.Announcement.List)
				r.Post("/", h.Announcement.Create)
				r.Get("/active", h.Announcement.ListActive)
				r.Get("/{id}", h.Announcement.Get)
				r.Put("/{id}", h.Announcement.Update)
				r.Delete("/{id}", h.Announcement.Delete)
				r.Post("/{id}/views", h.Announcement.MarkViewed)
				r.Get("/{id}/views", h.Announcement.ViewCount)
			})

			// Activity feed
			r.Get("/activity", h.Activity.List)

			// Enum registry
			r.Route("/enums", func(r chi.Router) {
				r.Post("/", h.Enum.Create)
				r.Delete("/options/{id}", h.Enum.Deactivate)
				r.Get("/{enumType}", h.Enum.List)
			})
		})
	})

	return r
}
