package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/dastfox/softdesk/internal/application/auth"
	"github.com/dastfox/softdesk/internal/application/authz"
	"github.com/dastfox/softdesk/internal/application/comment"
	"github.com/dastfox/softdesk/internal/application/contributor"
	"github.com/dastfox/softdesk/internal/application/issue"
	"github.com/dastfox/softdesk/internal/application/project"
	"github.com/dastfox/softdesk/internal/config"
	infraauth "github.com/dastfox/softdesk/internal/infrastructure/auth"
	httprouter "github.com/dastfox/softdesk/internal/infrastructure/http"
	"github.com/dastfox/softdesk/internal/infrastructure/http/handlers"
	"github.com/dastfox/softdesk/internal/infrastructure/http/middleware"
	"github.com/dastfox/softdesk/internal/infrastructure/persistence/postgres"
	"github.com/dastfox/softdesk/internal/infrastructure/security"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}
	if err := postgres.Migrate(cfg.Database.URL); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	healthHandler := handlers.NewHealthHandler(pool)

	userRepo := postgres.NewUserRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	contributorRepo := postgres.NewContributorRepository(pool)
	issueRepo := postgres.NewIssueRepository(pool)
	commentRepo := postgres.NewCommentRepository(pool)

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})

	pemBytes, err := cfg.LoadJWTPrivateKey()
	if err != nil {
		log.Fatal().Err(err).Msg("load JWT private key")
	}
	privateKey, err := infraauth.LoadRSAPrivateKeyFromPEM(pemBytes)
	if err != nil {
		log.Fatal().Err(err).Msg("parse JWT private key")
	}
	issuer := infraauth.NewTokenIssuer(privateKey, cfg.JWT.Issuer, cfg.JWT.Audience)

	resolver := authz.NewResolver(projectRepo, issueRepo, commentRepo)
	engine := authz.NewEngine(projectRepo, contributorRepo)
	engine.SetDecisionHook(middleware.RecordAuthzDecision)

	signupUC := auth.NewSignup(userRepo, hasher, issuer, cfg.JWT.AccessExpiry)
	loginUC := auth.NewLogin(userRepo, hasher, issuer, cfg.JWT.AccessExpiry)

	createProjectUC := project.NewCreateProject(projectRepo)
	listProjectsUC := project.NewListProjects(projectRepo)
	getProjectUC := project.NewGetProject(resolver, engine)
	updateProjectUC := project.NewUpdateProject(projectRepo, resolver, engine)
	deleteProjectUC := project.NewDeleteProject(projectRepo, resolver, engine)

	upsertContributorUC := contributor.NewUpsertContributor(contributorRepo, userRepo, resolver, engine)
	listContributorsUC := contributor.NewListContributors(contributorRepo, resolver, engine)
	getContributorUC := contributor.NewGetContributor(contributorRepo, resolver, engine)
	removeContributorUC := contributor.NewRemoveContributor(contributorRepo, resolver, engine)

	createIssueUC := issue.NewCreateIssue(issueRepo, resolver, engine)
	listIssuesUC := issue.NewListIssues(issueRepo, resolver, engine)
	getIssueUC := issue.NewGetIssue(resolver, engine)
	updateIssueUC := issue.NewUpdateIssue(issueRepo, resolver, engine)
	deleteIssueUC := issue.NewDeleteIssue(issueRepo, resolver, engine)

	createCommentUC := comment.NewCreateComment(commentRepo, resolver, engine)
	listCommentsUC := comment.NewListComments(commentRepo, resolver, engine)
	getCommentUC := comment.NewGetComment(resolver, engine)
	updateCommentUC := comment.NewUpdateComment(commentRepo, resolver, engine)
	deleteCommentUC := comment.NewDeleteComment(commentRepo, resolver, engine)

	ipLimit, err := middleware.NewIPRateLimiter(cfg.Server.RateLimit)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.Server.Development))
	corsMiddleware := middleware.CORS(cfg.Server.AllowedOrigins)

	authHandler := handlers.NewAuthHandler(signupUC, loginUC, log)
	usersHandler := handlers.NewUsersHandler(userRepo)
	projectsHandler := handlers.NewProjectsHandler(createProjectUC, listProjectsUC, getProjectUC, updateProjectUC, deleteProjectUC)
	contributorsHandler := handlers.NewContributorsHandler(upsertContributorUC, listContributorsUC, getContributorUC, removeContributorUC)
	issuesHandler := handlers.NewIssuesHandler(createIssueUC, listIssuesUC, getIssueUC, updateIssueUC, deleteIssueUC)
	commentsHandler := handlers.NewCommentsHandler(createCommentUC, listCommentsUC, getCommentUC, updateCommentUC, deleteCommentUC)
	requireJWT := middleware.NewAuthValidator(issuer).Handler
	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:         authHandler,
		HealthHandler:       healthHandler,
		UsersHandler:        usersHandler,
		ProjectsHandler:     projectsHandler,
		ContributorsHandler: contributorsHandler,
		IssuesHandler:       issuesHandler,
		CommentsHandler:     commentsHandler,
		RequireJWT:          requireJWT,
		Log:                 log,
		Secure:              secureMiddleware,
		CORS:                corsMiddleware,
		IPRateLimit:         ipLimit,
		Metrics:             cfg.Server.Metrics,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}
