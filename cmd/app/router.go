package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/health", app.healthCheckHandler)

	router.HandlerFunc(http.MethodPost, "/api/signup", app.signupHandler)
	router.HandlerFunc(http.MethodPost, "/api/login", app.loginHandler)
	router.HandlerFunc(http.MethodGet, "/api/users/:username", app.getUserHandler)

	router.HandlerFunc(http.MethodPost, "/api/blogs", app.createBlogHandler)
	router.HandlerFunc(http.MethodGet, "/api/blogs", app.listBlogsHandler)
	router.HandlerFunc(http.MethodGet, "/api/blogs/user/:username", app.listBlogsByAuthorHandler)
	router.HandlerFunc(http.MethodPut, "/api/blogs/:id", app.updateBlogHandler)
	router.HandlerFunc(http.MethodDelete, "/api/blogs/:id", app.deleteBlogHandler)

	return app.logRequest(app.recoverPanic(app.enableCORS(router)))
}
