// Package rest
package rest

import (
	"net/http"

	"github.com/favour-22/alx-polly/internal/config"
	"github.com/favour-22/alx-polly/internal/transport/rest/middleware"
	"github.com/favour-22/alx-polly/internal/transport/ws"
)

type RouterDeps struct {
	Ws   *ws.WebHandler
	Auth *AuthHandler
	Poll *PollHandler
}

func NewRouter(cfg *config.Config, deps *RouterDeps) http.Handler {
	mux := http.NewServeMux()

	globalMw := middleware.New()
	globalMw.Use(middleware.CORS(cfg))

	userStack := middleware.New()
	userStack.Use(middleware.JWT(cfg))
	userStack.Use(middleware.CSRF())

	guestStack := middleware.New()
	guestStack.Use(middleware.OptionalJWT(cfg))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("GET /ws", deps.Ws.Serve)

	mux.HandleFunc("POST /auth/login", deps.Auth.Login)
	mux.HandleFunc("POST /auth/register", deps.Auth.Register)
	mux.Handle("POST /auth/logout", userStack.Then(http.HandlerFunc(deps.Auth.Logout)))
	mux.HandleFunc("GET /auth/user", deps.Auth.User)
	mux.HandleFunc("GET /auth/session", deps.Auth.Session)

	mux.Handle("GET /polls", guestStack.Then(http.HandlerFunc(deps.Poll.Index)))
	mux.HandleFunc("GET /polls/{id}", deps.Poll.Show)
	mux.HandleFunc("GET /polls/{id}/results", deps.Poll.Results)
	mux.HandleFunc("GET /polls/{id}/activity", deps.Poll.Activity)

	mux.Handle("POST /polls", userStack.Then(http.HandlerFunc(deps.Poll.Store)))
	mux.Handle("DELETE /polls/{id}", userStack.Then(http.HandlerFunc(deps.Poll.Destroy)))
	mux.Handle("POST /polls/{id}/vote", userStack.Then(http.HandlerFunc(deps.Poll.Vote)))

	return globalMw.Apply(mux)
}
