package api

import (
	"context"
	"net/http"

	"github.com/SergeyKozhin/chat-calendar/internal/model"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type Api struct {
	handler        http.Handler
	logger         *zap.SugaredLogger
	allowedOrigins []string

	// jwts is nil when authentication is disabled
	jwts jwtManager

	chat   chatService
	events eventsService
}

type jwtManager interface {
	GetUserFromToken(token string) (string, error)
}

type chatService interface {
	HandleMessage(ctx context.Context, userID, message string, pending *model.EventCommand) (*model.ChatResult, error)
}

type eventsService interface {
	GetEvents(ctx context.Context, userID string) ([]*model.Event, error)
	GetEventByID(ctx context.Context, userID string, id int64) (*model.Event, error)
	UpdateEvent(ctx context.Context, userID string, id int64, info *model.EventUpdate) (*model.Event, error)
	DeleteEvent(ctx context.Context, userID string, id int64) error
}

func NewApi(
	logger *zap.SugaredLogger,
	allowedOrigins []string,
	jwts jwtManager,
	chat chatService,
	events eventsService,
) (*Api, error) {
	a := &Api{
		logger:         logger,
		allowedOrigins: allowedOrigins,
		jwts:           jwts,
		chat:           chat,
		events:         events,
	}
	a.setupHandler()

	return a, nil
}

func (a *Api) setupHandler() {
	middleware.DefaultLogger = func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a.logger.Debugw(r.URL.RequestURI(),
				"addr", r.RemoteAddr,
				"protocol", r.Proto,
				"method", r.Method,
				"request_id", requestIDFromContext(r.Context()),
			)
			next.ServeHTTP(w, r)
		})
	}

	r := chi.NewMux()

	r.Use(a.requestID, middleware.Logger, middleware.Recoverer, middleware.StripSlashes)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))
	r.NotFound(a.notFoundResponse)
	r.MethodNotAllowed(a.methodNotAllowedResponse)

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.With(a.auth).Route("/api", func(r chi.Router) {
		r.Post("/chat", a.chatHandler)

		r.Route("/events", func(r chi.Router) {
			r.Get("/", a.getEventsHandler)
			r.Get("/{eventID}", a.getEventHandler)
			r.Put("/{eventID}", a.updateEventHandler)
			r.Delete("/{eventID}", a.deleteEventHandler)
		})
	})

	a.handler = r
}

func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}
