package platform

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	activitytrack "github.com/bventy/platform/internal/http/handlers/activity/track"
	adminmoderate "github.com/bventy/platform/internal/http/handlers/admin/moderate"
	adminrole "github.com/bventy/platform/internal/http/handlers/admin/role"
	adminstats "github.com/bventy/platform/internal/http/handlers/admin/stats"
	adminusers "github.com/bventy/platform/internal/http/handlers/admin/users"
	authexchange "github.com/bventy/platform/internal/http/handlers/auth/exchange"
	authlogin "github.com/bventy/platform/internal/http/handlers/auth/login"
	authlogout "github.com/bventy/platform/internal/http/handlers/auth/logout"
	authredeem "github.com/bventy/platform/internal/http/handlers/auth/redeem"
	authregister "github.com/bventy/platform/internal/http/handlers/auth/register"
	eventcreate "github.com/bventy/platform/internal/http/handlers/event/create"
	eventlist "github.com/bventy/platform/internal/http/handlers/event/list"
	eventread "github.com/bventy/platform/internal/http/handlers/event/read"
	eventshortlist "github.com/bventy/platform/internal/http/handlers/event/shortlist"
	groupcreate "github.com/bventy/platform/internal/http/handlers/group/create"
	grouplist "github.com/bventy/platform/internal/http/handlers/group/list"
	mediaupload "github.com/bventy/platform/internal/http/handlers/media/upload"
	profileread "github.com/bventy/platform/internal/http/handlers/profile/read"
	profileupdate "github.com/bventy/platform/internal/http/handlers/profile/update"
	quoteattachment "github.com/bventy/platform/internal/http/handlers/quote/attachment"
	quotecontact "github.com/bventy/platform/internal/http/handlers/quote/contact"
	quotedecide "github.com/bventy/platform/internal/http/handlers/quote/decide"
	quotelist "github.com/bventy/platform/internal/http/handlers/quote/list"
	quoterequest "github.com/bventy/platform/internal/http/handlers/quote/request"
	quoterespond "github.com/bventy/platform/internal/http/handlers/quote/respond"
	vendorlist "github.com/bventy/platform/internal/http/handlers/vendors/list"
	vendoronboard "github.com/bventy/platform/internal/http/handlers/vendors/onboard"
	vendorown "github.com/bventy/platform/internal/http/handlers/vendors/own"
	vendorread "github.com/bventy/platform/internal/http/handlers/vendors/read"
	vendorupdate "github.com/bventy/platform/internal/http/handlers/vendors/update"
	"github.com/bventy/platform/internal/http/middlewarectx"
	activityservice "github.com/bventy/platform/internal/services/activity"
	adminservice "github.com/bventy/platform/internal/services/admin"
	authservice "github.com/bventy/platform/internal/services/auth"
	bridgeservice "github.com/bventy/platform/internal/services/bridge"
	eventservice "github.com/bventy/platform/internal/services/event"
	groupservice "github.com/bventy/platform/internal/services/group"
	mediaservice "github.com/bventy/platform/internal/services/media"
	quoteservice "github.com/bventy/platform/internal/services/quote"
	vendorservice "github.com/bventy/platform/internal/services/vendors"
)

// Services bundles the business logic behind the routes.
type Services struct {
	Auth     *authservice.Service
	Bridge   *bridgeservice.Service
	Vendor   *vendorservice.Service
	Event    *eventservice.Service
	Group    *groupservice.Service
	Quote    *quoteservice.Service
	Admin    *adminservice.Service
	Media    *mediaservice.Service
	Activity *activityservice.Service
}

// RegisterRoutes registers every route of the API.
func RegisterRoutes(r chi.Router, logger *slog.Logger, maker middlewarectx.TokenParser, s *Services) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// open endpoints
		r.Post("/auth/signup", authregister.New(logger, s.Auth).ServeHTTP)
		r.Post("/auth/login", authlogin.New(logger, s.Auth).ServeHTTP)
		r.Post("/auth/bridge/redeem", authredeem.New(logger, s.Bridge).ServeHTTP)
		r.Get("/vendors", vendorlist.New(logger, s.Vendor).ServeHTTP)
		r.Get("/vendors/slug/{slug}", vendorread.New(logger, s.Vendor).ServeHTTP)

		// authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(maker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/auth/logout", authlogout.New(logger, s.Auth).ServeHTTP)
			r.Post("/auth/bridge", authexchange.New(logger, s.Bridge).ServeHTTP)

			r.Get("/me", profileread.New(logger, s.Auth).ServeHTTP)
			r.Put("/me", profileupdate.New(logger, s.Auth).ServeHTTP)

			r.Post("/vendor/onboard", vendoronboard.New(logger, s.Vendor).ServeHTTP)
			r.Get("/vendor/profile", vendorown.New(logger, s.Vendor).ServeHTTP)
			r.Put("/vendor/profile", vendorupdate.New(logger, s.Vendor).ServeHTTP)

			r.Post("/events", eventcreate.New(logger, s.Event).ServeHTTP)
			r.Get("/events", eventlist.New(logger, s.Event).ServeHTTP)
			r.Get("/events/{id}", eventread.New(logger, s.Event).ServeHTTP)
			shortlistHandler := eventshortlist.New(logger, s.Event)
			r.Post("/events/{id}/shortlist/{vendorID}", shortlistHandler.Add)
			r.Delete("/events/{id}/shortlist/{vendorID}", shortlistHandler.Remove)

			r.Post("/groups", groupcreate.New(logger, s.Group).ServeHTTP)
			r.Get("/groups/my", grouplist.New(logger, s.Group).ServeHTTP)

			r.Post("/quotes/request", quoterequest.New(logger, s.Quote).ServeHTTP)
			quoteListHandler := quotelist.New(logger, s.Quote)
			r.Get("/quotes/organizer", quoteListHandler.Organizer)
			r.Get("/quotes/vendor", quoteListHandler.Vendor)
			r.Patch("/quotes/respond/{id}", quoterespond.New(logger, s.Quote, s.Media).ServeHTTP)
			quoteDecideHandler := quotedecide.New(logger, s.Quote)
			r.Patch("/quotes/accept/{id}", quoteDecideHandler.Accept)
			r.Patch("/quotes/reject/{id}", quoteDecideHandler.Reject)
			r.Patch("/quotes/request-revision/{id}", quoteDecideHandler.Revision)
			r.Get("/quotes/{id}/contact", quotecontact.New(logger, s.Quote).ServeHTTP)
			r.Get("/quotes/{id}/attachment", quoteattachment.New(logger, s.Quote).ServeHTTP)

			r.Post("/media/upload", mediaupload.New(logger, s.Media).ServeHTTP)
			r.Post("/track/activity", activitytrack.New(logger, s.Activity).ServeHTTP)
		})

		// admin panel endpoints
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(maker, logger))
			r.Use(middlewarectx.RequireAdmin(logger))

			moderateHandler := adminmoderate.New(logger, s.Vendor)
			r.Get("/admin/vendors", moderateHandler.Pending)
			r.Patch("/admin/vendors/{id}/approve", moderateHandler.Approve)
			r.Patch("/admin/vendors/{id}/reject", moderateHandler.Reject)
			r.Get("/admin/stats", adminstats.New(logger, s.Admin).ServeHTTP)
			r.Get("/admin/users", adminusers.New(logger, s.Admin).ServeHTTP)
			r.Patch("/admin/users/{uid}/role", adminrole.New(logger, s.Admin).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
