package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/library-loan-system/internal/handler"    // handlers that implement the role-scoped views
	"github.com/iliyamo/library-loan-system/internal/middleware" // JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check, used by load balancers and
// monitoring to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the login endpoint.  Login is the only
// unauthenticated operation; it exchanges an admin password or a student
// email for an access token carrying the role claim.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
}

// RegisterStudent registers the student view under /v1.  All routes require
// a valid access token with the STUDENT role, except the catalog which both
// roles may browse.
func RegisterStudent(e *echo.Echo, s *handler.StudentHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))

	// Catalog browsing is shared by both roles.
	g.GET("/books", s.Catalog, middleware.RequireRole(middleware.RoleStudent, middleware.RoleAdmin))

	st := g.Group("")
	st.Use(middleware.RequireRole(middleware.RoleStudent))
	st.GET("/me", s.Me)
	st.GET("/me/loans", s.MyLoans)
	st.POST("/loans", s.RequestLoan)
}

// RegisterAdmin registers the administrator view under /v1/admin: catalog
// and roster management, loan decisions and bulk import/export.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(middleware.RoleAdmin))

	g.GET("/books", a.ListBooks)
	g.POST("/books", a.CreateBook)
	g.PATCH("/books/:id", a.UpdateBook)
	g.DELETE("/books/:id", a.DeleteBook)

	g.GET("/students", a.ListStudents)
	g.POST("/students", a.CreateStudent)
	g.PATCH("/students/:id", a.UpdateStudent)
	g.DELETE("/students/:id", a.DeleteStudent)

	g.GET("/loans", a.ListLoans)
	g.POST("/loans/:id/decision", a.DecideLoan)

	g.GET("/export/:collection", a.ExportCollection)
	g.POST("/import/:collection", a.ImportCollection)
	g.GET("/samples/:collection", a.SampleCollection)
}
