package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/loragriffin/blog-app/app/controllers"
	"github.com/loragriffin/blog-app/app/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes registers the blog routes. Order matters: the slug capture
// accepts slashes, so the comment route has to be registered first.
// A nil gatherer leaves /metrics out.
func SetupRoutes(bc *controllers.BlogController, staticDir string, gatherer prometheus.Gatherer) http.Handler {
	router := mux.NewRouter()
	router.Use(middleware.Metrics)
	// mux skips Use middleware when nothing matches
	router.NotFoundHandler = middleware.Metrics(http.NotFoundHandler())
	router.MethodNotAllowedHandler = middleware.Metrics(http.HandlerFunc(methodNotAllowed))

	// Web routes
	router.HandleFunc("/", bc.Home).Methods("GET")
	router.HandleFunc("/page/{name}", bc.Page).Methods("GET")
	router.HandleFunc("/post/{slug:.+}/comment", bc.Comment).Methods("POST")
	router.HandleFunc("/post/{slug:.+}", bc.Show).Methods("GET")
	router.HandleFunc("/author/{id:[0-9]+}", bc.Author).Methods("GET")

	// Serve static files
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

	// Operational endpoints
	router.HandleFunc("/healthz", bc.Healthz).Methods("GET")
	if gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods("GET")
	}

	return middleware.Chain(router,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.SecureHeaders,
	)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
