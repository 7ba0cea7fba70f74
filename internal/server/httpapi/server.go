// Package httpapi exposes the service over HTTP/JSON: login/logout, the
// public and authenticated influencer listings, and the spreadsheet upload.
package httpapi

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ymori23/ranking-server/internal/logging"
	"github.com/ymori23/ranking-server/internal/server/importer"
	"github.com/ymori23/ranking-server/internal/server/influencers"
	"github.com/ymori23/ranking-server/internal/server/sessions"
)

// CredentialVerifier checks a username/password pair against the credential
// store.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) error
}

// Lister is the listing service surface used by the read endpoints.
type Lister interface {
	List(ctx context.Context, q influencers.ListQuery) (*influencers.ListResult, error)
	ListAll(ctx context.Context, region string) (*influencers.ListResult, error)
}

// ImportRunner executes the bulk-import pipeline on an uploaded workbook.
type ImportRunner interface {
	Run(ctx context.Context, src io.Reader, filename string) (*importer.Report, error)
}

type Server struct {
	address     string
	logger      logging.Logger
	users       CredentialVerifier
	sessions    *sessions.Store
	influencers Lister
	importer    ImportRunner
	sessionTTL  time.Duration
}

func NewServer(
	address string,
	logger logging.Logger,
	users CredentialVerifier,
	store *sessions.Store,
	lister Lister,
	imp ImportRunner,
	sessionTTL time.Duration,
) *Server {
	return &Server{
		address:     address,
		logger:      logger.With("module", "http_server"),
		users:       users,
		sessions:    store,
		influencers: lister,
		importer:    imp,
		sessionTTL:  sessionTTL,
	}
}

// Router builds the gin engine. Protected routes sit behind the session
// middleware; everything else is public.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	{
		api.POST("/login", s.login)
		api.GET("/influencers/all", s.listAllInfluencers)

		protected := api.Group("")
		protected.Use(s.requireSession())
		{
			protected.POST("/logout", s.logout)
			protected.GET("/influencers", s.listInfluencers)
			protected.POST("/upload_influencers", s.uploadInfluencers)
		}
	}

	return r
}

// Run starts the HTTP server and shuts it down gracefully when ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
