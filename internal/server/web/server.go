// Package web is the HTTP transport: routing, session cookie handling,
// and HTML rendering over the core services. It holds no business rules;
// every data access goes through the services with an explicit principal.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dkotelnikov/invoicehub/internal/logging"
	"github.com/dkotelnikov/invoicehub/internal/server/services"
)

//go:embed templates/*.html
var templatesFS embed.FS

type HTTPServer struct {
	address    string
	engine     *gin.Engine
	logger     logging.Logger
	users      *services.UserService
	invoices   *services.InvoiceService
	jwtSecret  []byte
	sessionTTL time.Duration
}

func NewHTTPServer(a string, l logging.Logger, us *services.UserService, is *services.InvoiceService,
	secretKey string, sessionTTL time.Duration) (*HTTPServer, error) {

	s := &HTTPServer{
		address:    a,
		logger:     l.With("module", "http_server"),
		users:      us,
		invoices:   is,
		jwtSecret:  []byte(secretKey),
		sessionTTL: sessionTTL,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(s.requestID(), s.requestLogger(), gin.Recovery())

	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(tmpl)

	s.registerRoutes(engine)
	s.engine = engine

	return s, nil
}

func (s *HTTPServer) registerRoutes(engine *gin.Engine) {
	engine.GET("/signup", s.SignupForm)
	engine.POST("/signup", s.Signup)
	engine.GET("/login", s.LoginForm)
	engine.POST("/login", s.Login)
	engine.GET("/logout", s.Logout)

	// Protected routes (require an established session)
	private := engine.Group("/")
	private.Use(s.requireSession())
	private.GET("/", s.Home)
	private.POST("/", s.CreateInvoice)
	private.GET("/delete/:id", s.DeleteInvoice)
	private.GET("/edit/:id", s.EditForm)
	private.POST("/edit/:id", s.EditInvoice)
}

// Handler exposes the configured engine, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.engine,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
