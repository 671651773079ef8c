package handlers

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"quadplus/api/internal/config"
	"quadplus/api/internal/middleware"
	"quadplus/api/internal/models"
	"quadplus/api/internal/policy"
	"quadplus/api/internal/repository"
	"quadplus/api/internal/service"
	"quadplus/api/internal/state"
)

// ObjectStore is the slice of the storage layer the file handlers use.
type ObjectStore interface {
	PutProjectFile(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) error
	RemoveProjectFile(ctx context.Context, objectKey string) error
	PresignedDownloadURL(ctx context.Context, objectKey string, fileName string, expiry time.Duration) (string, error)
}

type HandlerSet struct {
	log         zerolog.Logger
	cfg         *config.AppConfig
	authService *service.AuthService
	store       *state.Store
	objects     ObjectStore
	db          *pgxpool.Pool
	cache       *redis.Client
	users       *repository.UserRepository
	sessions    *repository.SessionRepository
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, objects ObjectStore, store *state.Store, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	auth := service.NewAuthService(userRepo, sessionRepo, cfg, log)

	return HandlerSet{
		log:         log,
		cfg:         cfg,
		authService: auth,
		store:       store,
		objects:     objects,
		db:          db,
		cache:       cache,
		users:       userRepo,
		sessions:    sessionRepo,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	v1 := router.Group("/v1")

	// Marketing surface: no auth.
	v1.GET("/services", h.ListServices)
	v1.POST("/contact", h.SubmitContact)

	// Legacy path kept as a redirect.
	v1.GET("/overview", func(c *gin.Context) {
		c.Redirect(http.StatusPermanentRedirect, "/api/v1/dashboard/overview")
	})

	auth := v1.Group("/auth")
	auth.POST("/register", h.RegisterUser)
	auth.POST("/login", h.Login)
	auth.POST("/refresh", h.Refresh)
	auth.POST("/logout", h.Logout)

	protected := v1.Group("/auth")
	protected.Use(middleware.Auth(h.cfg, h.users, h.sessions))
	protected.GET("/me", h.Me)
	protected.GET("/sessions", h.ListSessions)
	protected.DELETE("/sessions/:deviceId", h.RevokeSession)

	dash := v1.Group("/dashboard")
	dash.Use(middleware.Auth(h.cfg, h.users, h.sessions))
	h.RegisterDashboard(dash)

	admin := v1.Group("/admin")
	admin.Use(
		middleware.Auth(h.cfg, h.users, h.sessions),
		middleware.RequireRoles(models.RoleSuperAdmin),
	)
	admin.GET("/users", h.AdminListUsers)
	admin.PATCH("/users/:id/role", h.AdminUpdateUserRole)
}

// RegisterDashboard wires the panel routes onto an authenticated group. Each
// panel group is gated on visibility; mutation rights are checked per
// operation.
func (h HandlerSet) RegisterDashboard(dash *gin.RouterGroup) {
	dash.GET("/overview", middleware.RequirePanel(policy.PanelOverview), h.Overview)
	dash.GET("/notifications", h.ListNotifications)

	projects := dash.Group("/projects", middleware.RequirePanel(policy.PanelProjects))
	projects.GET("", h.ListProjects)
	projects.POST("", h.CreateProject)
	projects.PATCH("/:id/status", h.UpdateProjectStatus)
	projects.PATCH("/:id/progress", h.UpdateProjectProgress)
	projects.PATCH("/:id/roles", h.UpdateProjectRoles)
	projects.PATCH("/:id/package", h.UpdateProjectPackage)
	projects.POST("/:id/files", h.UploadProjectFiles)
	projects.POST("/:id/files/:index/approve", h.ApproveProjectFile)
	projects.DELETE("/:id/files/:index", h.RemoveProjectFile)
	projects.GET("/:id/files/:index/download", h.DownloadProjectFile)

	team := dash.Group("/team", middleware.RequirePanel(policy.PanelTeam))
	team.GET("", h.ListTeam)
	team.POST("", h.AddTeamMember)
	team.PATCH("/:id", h.UpdateTeamMember)
	team.DELETE("/:id", h.RemoveTeamMember)
	team.DELETE("/by-name/:name", h.RemoveTeamMemberByName)

	documents := dash.Group("/documents", middleware.RequirePanel(policy.PanelDocuments))
	documents.GET("", h.ListDocuments)
	documents.POST("", h.AddDocument)
	documents.PATCH("/:id", h.RenameDocument)
	documents.DELETE("/:id", h.DeleteDocument)

	meetings := dash.Group("/meetings", middleware.RequirePanel(policy.PanelCalendar))
	meetings.GET("", h.ListMeetings)
	meetings.POST("", h.AddMeeting)
	meetings.PATCH("/:id", h.UpdateMeeting)
	meetings.DELETE("/:id", h.RemoveMeeting)

	messages := dash.Group("/messages", middleware.RequirePanel(policy.PanelMessages))
	messages.GET("", h.ListMessages)
	messages.POST("", h.SendMessage)

	settings := dash.Group("/settings", middleware.RequirePanel(policy.PanelSettings))
	settings.GET("", h.GetSettings)
	settings.PUT("", h.UpdateSettings)
}

// requireMutate enforces the panel's mutate rule and writes the 403 itself.
func (h HandlerSet) requireMutate(c *gin.Context, panel policy.Panel) (models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return models.User{}, false
	}
	if !policy.CanMutate(user.Role, panel) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return models.User{}, false
	}
	return user, true
}
