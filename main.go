package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"inkwell/blog"
	"inkwell/cache"
	"inkwell/config"
	"inkwell/recordstore"
	"inkwell/session"
	"inkwell/site"
	"inkwell/uploader"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, err := recordstore.New(cfg.RecordStoreURL)
	if err != nil {
		log.Fatalf("Failed to build record store client: %v", err)
	}

	sess := session.NewStore(store, cfg.SessionFile)
	sess.Restore()

	service := blog.NewService(store, cache.NewStore(), sess, uploader.New(cfg.ImageHostURL))
	s := site.New(service, sess)
	r := initRouter(s)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Running on http://localhost%s (record store: %s)", cfg.Addr, cfg.RecordStoreURL)
		if err := http.ListenAndServe(cfg.Addr, r); err != nil {
			log.Printf("HTTP server stopped: %v", err)
		}
	}()

	// Block until a signal is received
	<-signals
	log.Println("Shutting down gracefully...")
}

func initRouter(s *site.Site) *chi.Mux {
	r := chi.NewRouter()

	CORSMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	})

	r.Use(CORSMiddleware.Handler)
	r.Use(middleware.Logger)
	r.Use(httprate.LimitByIP(100, time.Minute)) // general rate limiter for all routes (shared across all routes)
	r.Use(middleware.Recoverer)

	r.Get("/", s.Home)
	r.Get("/about", s.About)
	r.Get("/search", s.Search)
	r.HandleFunc("/login", s.Login)
	r.HandleFunc("/register", s.Register)
	r.Post("/logout", s.Logout)

	r.Get("/post/{postID}", s.ViewPost)
	r.Post("/post/{postID}/like", s.LikePost)
	r.Post("/post/{postID}/comment", s.AddComment)
	r.Post("/post/{postID}/comment/{commentID}/delete", s.DeleteComment)
	r.Get("/u/{userID}", s.ViewUser)
	r.Get("/user/{userID}", s.ViewUser)

	r.With(s.AuthProtectedMiddleware).Route("/dashboard", func(r chi.Router) {
		r.Get("/", s.MyPosts)
		r.HandleFunc("/new", s.CreatePost)
		r.HandleFunc("/edit/{postID}", s.EditPost)
		r.Post("/delete/{postID}", s.DeletePost)
		r.Get("/favorites", s.Favorites)
		r.HandleFunc("/settings", s.Settings)
	})
	r.With(s.AuthProtectedMiddleware).Post("/post/{postID}/favorite", s.FavoritePost)

	r.With(s.AdminOnlyMiddleware).Route("/admin", func(r chi.Router) {
		r.Get("/", s.AdminOverview)
		r.Get("/posts", s.AdminPosts)
		r.HandleFunc("/posts/{postID}/edit", s.AdminEditPost)
		r.HandleFunc("/posts/{postID}/delete", s.AdminDeletePost)
		r.HandleFunc("/users", s.AdminUsers)
		r.HandleFunc("/users/{userID}/delete", s.AdminDeleteUser)
		r.HandleFunc("/users/{userID}/role", s.AdminSetRole)
	})

	fileServer := http.FileServer(http.Dir("./assets"))
	r.Handle("/assets/*", http.StripPrefix("/assets", fileServer))

	return r
}
