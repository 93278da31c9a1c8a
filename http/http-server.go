package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"

	"github.com/codeclash/backend/auth"
	"github.com/codeclash/backend/contest"
	"github.com/codeclash/backend/rating"
)

type HttpServer struct {
	coordinator *contest.Coordinator
	ratingSrvc  *rating.RatingSrvc
	router      *chi.Mux
}

func NewHttpServer(
	coordinator *contest.Coordinator,
	ratingSrvc *rating.RatingSrvc,
	jwtKey []byte,
	allowedOrigins []string,
) *HttpServer {
	router := chi.NewRouter()

	logger := httplog.NewLogger("codeclash", httplog.Options{
		LogLevel:         slog.LevelDebug,
		Concise:          true,
		RequestHeaders:   true,
		MessageFieldName: "message",
		Tags: map[string]string{
			"env": "dev",
		},
	})

	router.Use(httplog.RequestLogger(logger))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           3000,
	}))

	router.Use(auth.GetJwtAuthMiddleware(jwtKey))

	server := &HttpServer{
		coordinator: coordinator,
		ratingSrvc:  ratingSrvc,
		router:      router,
	}

	server.routes()

	return server
}

func (httpserver *HttpServer) Start(address string) error {
	return http.ListenAndServe(address, httpserver.router)
}

func (httpserver *HttpServer) Handler() http.Handler {
	return httpserver.router
}

func (httpserver *HttpServer) routes() {
	r := httpserver.router
	r.Post("/contests", httpserver.createContest)
	r.Get("/contests/active", httpserver.listActiveContests)
	r.Get("/contests/joinable", httpserver.listJoinableContests)
	r.Get("/contests/{contestID}", httpserver.getContestStatus)
	r.Post("/contests/{contestID}/join", httpserver.joinContest)
	r.Post("/contests/{contestID}/submissions", httpserver.submitSolution)
	r.Post("/contests/{contestID}/leave", httpserver.leaveContest)
	r.Get("/ratings/stats", httpserver.getRatingStats)
	r.Get("/ratings/history", httpserver.getRatingHistory)
}
