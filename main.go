package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"codearena/config"
	"codearena/handler"
	"codearena/middleware"
	"codearena/model"
	"codearena/repository"
	"codearena/services"
	"codearena/usecase"
	"codearena/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxRequestBody = 1 << 20 // submissions are source files, not uploads

func loadConfig() config.Config {
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := config.Load()

	required := map[string]string{
		"JWT_SECRET_KEY":           cfg.JWTSecret,
		"MONGO_URI":                cfg.Database.URI,
		"SUPERADMIN_EMAIL":         cfg.SuperadminEmail,
		"SUPERADMIN_PASSWORD_HASH": cfg.SuperadminPasswordHash,
	}
	for name, value := range required {
		if value == "" {
			log.Fatalf("Required environment variable %s is not set", name)
		}
	}

	return cfg
}

func setupRouter(cfg config.Config, google *services.GoogleAuthenticator) *gin.Engine {
	db := utils.MongoClient.Database(cfg.Database.DatabaseName)

	userRepo := repository.GetUserRepo(db)
	sessionRepo := repository.GetSessionRepo(db)
	classroomRepo := repository.GetClassroomRepo(db)
	exerciseRepo := repository.GetExerciseRepo(db)
	assignmentRepo := repository.GetAssignmentRepo(db)
	submissionRepo := repository.GetSubmissionRepo(db)
	inviteRepo := repository.GetInviteRepo(db)

	gate := &usecase.AccessGate{Assignments: assignmentRepo}
	guard := &usecase.SessionGuard{
		Sessions:        sessionRepo,
		InactivityLimit: cfg.SessionInactivityLimit,
	}
	classroomService := &usecase.ClassroomService{Classrooms: classroomRepo}
	assignmentService := &usecase.AssignmentService{
		Assignments: assignmentRepo,
		Exercises:   exerciseRepo,
		Classrooms:  classroomService,
	}
	gradingService := &usecase.GradingService{
		Submissions: submissionRepo,
		Assignments: assignmentRepo,
		Exercises:   exerciseRepo,
		Gate:        gate,
		Judge:       services.NewJudgeClient(cfg.JudgeURL, cfg.JudgeAPIKey),
	}
	inviteService := &usecase.InviteService{
		Invites:   inviteRepo,
		Users:     userRepo,
		InviteTTL: cfg.InviteTTL,
	}

	router := gin.New()
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestSizeLimiter(maxRequestBody))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/login", func(c *gin.Context) {
				handler.LoginHandler(c, userRepo)
			})
			auth.POST("/refresh", handler.RefreshTokenHandler)
			if google != nil {
				auth.GET("/google", func(c *gin.Context) {
					handler.GoogleAuthHandler(c, google)
				})
				auth.GET("/google/callback", func(c *gin.Context) {
					handler.GoogleCallbackHandler(c, google, userRepo, guard)
				})
			}
		}
		public.POST("/invites/redeem", func(c *gin.Context) {
			handler.RedeemInviteHandler(c, inviteService)
		})
	}

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(userRepo))

	// Registered before the activity middleware attaches: polling the
	// status endpoint must not count as activity.
	protected.GET("/session/check-active", func(c *gin.Context) {
		handler.CheckActiveHandler(c, guard)
	})

	protected.Use(middleware.SessionActivityMiddleware(sessionRepo))
	{
		user := protected.Group("/user")
		{
			user.POST("/logout", func(c *gin.Context) {
				handler.LogoutHandler(c, guard)
			})
			user.POST("/2fa/setup", func(c *gin.Context) {
				handler.Setup2FAHandler(c, userRepo)
			})
			user.POST("/2fa/verify", func(c *gin.Context) {
				handler.Verify2FAHandler(c, userRepo)
			})
		}

		protected.POST("/invites",
			middleware.RequireRoles(model.RoleSuperadmin),
			func(c *gin.Context) {
				handler.CreateInviteHandler(c, inviteService)
			})

		classrooms := protected.Group("/classrooms")
		{
			classrooms.GET("", func(c *gin.Context) {
				handler.ListClassroomsHandler(c, classroomService)
			})
			classrooms.POST("",
				middleware.RequireRoles(model.RoleProfessor, model.RoleSuperadmin),
				func(c *gin.Context) {
					handler.CreateClassroomHandler(c, classroomService)
				})
			classrooms.POST("/join",
				middleware.RequireRoles(model.RoleAluno),
				func(c *gin.Context) {
					handler.JoinClassroomHandler(c, classroomService)
				})
			classrooms.POST("/:id/leave",
				middleware.RequireRoles(model.RoleAluno),
				func(c *gin.Context) {
					handler.LeaveClassroomHandler(c, classroomService)
				})
			classrooms.GET("/:id/students", func(c *gin.Context) {
				handler.RosterHandler(c, classroomService, userRepo)
			})
			classrooms.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteClassroomHandler(c, classroomService)
			})

			classrooms.GET("/:id/exercises", func(c *gin.Context) {
				handler.ListExercisesHandler(c, assignmentService)
			})
			classrooms.POST("/:id/exercises",
				middleware.RequireRoles(model.RoleProfessor, model.RoleSuperadmin),
				func(c *gin.Context) {
					handler.CreateExerciseHandler(c, assignmentService)
				})

			classrooms.GET("/:id/assignments", func(c *gin.Context) {
				handler.ListAssignmentsHandler(c, assignmentService)
			})
			classrooms.POST("/:id/assignments",
				middleware.RequireRoles(model.RoleProfessor, model.RoleSuperadmin),
				func(c *gin.Context) {
					handler.CreateAssignmentHandler(c, assignmentService)
				})
		}

		exercises := protected.Group("/exercises")
		exercises.Use(middleware.RequireRoles(model.RoleProfessor, model.RoleSuperadmin))
		{
			exercises.PUT("/:id", func(c *gin.Context) {
				handler.UpdateExerciseHandler(c, assignmentService)
			})
			exercises.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteExerciseHandler(c, assignmentService)
			})
		}

		assignments := protected.Group("/assignments")
		{
			assignments.GET("/:id/check-access", func(c *gin.Context) {
				handler.CheckAccessHandler(c, gate)
			})
			assignments.POST("/:id/submissions",
				middleware.RequireRoles(model.RoleAluno),
				func(c *gin.Context) {
					handler.SubmitHandler(c, gradingService)
				})
			assignments.GET("/:id/submissions", func(c *gin.Context) {
				handler.ListSubmissionsHandler(c, gradingService, classroomService)
			})
			assignments.PUT("/:id",
				middleware.RequireRoles(model.RoleProfessor, model.RoleSuperadmin),
				func(c *gin.Context) {
					handler.UpdateAssignmentHandler(c, assignmentService)
				})
			assignments.DELETE("/:id",
				middleware.RequireRoles(model.RoleProfessor, model.RoleSuperadmin),
				func(c *gin.Context) {
					handler.DeleteAssignmentHandler(c, assignmentService)
				})
		}

		protected.GET("/admin/stats",
			middleware.RequireRoles(model.RoleSuperadmin),
			handler.SystemStatsHandler)
	}

	return router
}

func main() {
	cfg := loadConfig()

	utils.InitValidator()
	utils.InitJWT(cfg.JWTSecret, cfg.JWTExpiration, cfg.RefreshExpiration)

	if err := utils.InitMongoClient(
		cfg.Database.URI,
		cfg.Database.MaxPoolSize,
		cfg.Database.MinPoolSize,
		cfg.Database.MaxConnIdleTime,
		cfg.Database.RetryWrites,
	); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	db := utils.MongoClient.Database(cfg.Database.DatabaseName)
	if err := repository.SetupIndexes(db, cfg.SessionTTL); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := repository.GetUserRepo(db).EnsureSuperadmin(ctx, cfg.SuperadminEmail, cfg.SuperadminPasswordHash); err != nil {
		log.Fatalf("Failed to ensure superadmin account: %v", err)
	}
	cancel()

	if cfg.RedisURL != "" {
		cache, err := services.NewSessionCache(cfg.RedisURL, cfg.SessionTTL)
		if err != nil {
			log.Printf("Session cache disabled: %v", err)
		} else {
			services.GlobalSessionCache = cache
			log.Println("Session cache enabled")
		}
	}

	var google *services.GoogleAuthenticator
	if cfg.GoogleClientID != "" {
		var err error
		google, err = services.NewGoogleAuthenticator(
			context.Background(),
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.BaseURL+"/api/auth/google/callback",
		)
		if err != nil {
			log.Fatalf("Failed to configure Google sign-in: %v", err)
		}
	} else {
		log.Println("Google sign-in disabled: GOOGLE_CLIENT_ID not set")
	}

	router := setupRouter(cfg, google)

	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
