package site

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"inkwell/recordstore"
	"inkwell/session"
	"inkwell/templates"
)

func (s *Site) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	posts, err := s.Blog.PublicPosts(ctx)
	if err != nil {
		s.renderFailure(w, r, err)
		return
	}
	users, err := s.Blog.AllUsers(ctx)
	if err != nil {
		s.renderFailure(w, r, err)
		return
	}

	s.render(w, templates.HomePage(s.props("Home"), s.buildCards(posts, users)))
}

func (s *Site) buildCards(posts []recordstore.Post, users []recordstore.User) []templates.PostCard {
	byID := make(map[string]*recordstore.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	cards := make([]templates.PostCard, 0, len(posts))
	for _, p := range posts {
		cards = append(cards, templates.PostCard{
			Post:    p,
			Author:  byID[p.AuthorID],
			Excerpt: excerpt(recordstore.DecodeBodyOrRaw(p.Body)),
		})
	}
	return cards
}

func (s *Site) ViewPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	postID := chi.URLParam(r, "postID")

	post, err := s.Blog.PostByID(ctx, postID)
	if err != nil {
		s.renderFailure(w, r, err)
		return
	}
	if post == nil {
		s.notFound(w, "This post")
		return
	}

	author, err := s.Blog.Author(ctx, post.AuthorID)
	if err != nil {
		s.renderFailure(w, r, err)
		return
	}
	users, err := s.Blog.AllUsers(ctx)
	if err != nil {
		s.renderFailure(w, r, err)
		return
	}
	byID := make(map[string]*recordstore.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	detail := templates.PostDetail{
		Post:   *post,
		Body:   recordstore.DecodeBodyOrRaw(post.Body),
		Author: author,
	}
	if viewer := s.Session.Current(); viewer != nil {
		detail.Liked = post.LikedBy(viewer.ID)
		detail.Saved = viewer.HasFavorite(post.ID)
	}
	for _, c := range post.Comments {
		detail.Comments = append(detail.Comments, templates.CommentView{
			Comment: c,
			Author:  byID[c.UserID],
		})
	}

	s.render(w, templates.PostPage(s.props(post.Title), detail))
}

func (s *Site) LikePost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")
	user := s.Session.Current()
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if _, err := s.Blog.ToggleLike(r.Context(), postID, user.ID); err != nil {
		s.renderFailure(w, r, err)
		return
	}
	http.Redirect(w, r, "/post/"+postID, http.StatusSeeOther)
}

func (s *Site) FavoritePost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")
	if _, err := s.Blog.ToggleFavorite(r.Context(), postID); err != nil {
		s.renderFailure(w, r, err)
		return
	}
	http.Redirect(w, r, "/post/"+postID, http.StatusSeeOther)
}

func (s *Site) AddComment(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")
	content := strings.TrimSpace(r.FormValue("content"))
	if content == "" {
		http.Redirect(w, r, "/post/"+postID, http.StatusSeeOther)
		return
	}
	if _, err := s.Blog.AddComment(r.Context(), postID, content); err != nil {
		s.renderFailure(w, r, err)
		return
	}
	http.Redirect(w, r, "/post/"+postID, http.StatusSeeOther)
}

func (s *Site) DeleteComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	postID := chi.URLParam(r, "postID")
	commentID := chi.URLParam(r, "commentID")

	user := s.Session.Current()
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	post, err := s.Blog.PostByID(ctx, postID)
	if err != nil {
		s.renderFailure(w, r, err)
		return
	}
	if post == nil {
		s.notFound(w, "This post")
		return
	}

	// Only the comment's author or an admin may remove it.
	allowed := user.IsAdmin()
	for _, c := range post.Comments {
		if c.ID == commentID && c.UserID == user.ID {
			allowed = true
		}
	}
	if !allowed {
		http.Error(w, "You don't own this comment", http.StatusForbidden)
		return
	}

	if _, err := s.Blog.DeleteComment(ctx, postID, commentID); err != nil {
		s.renderFailure(w, r, err)
		return
	}
	http.Redirect(w, r, "/post/"+postID, http.StatusSeeOther)
}

func (s *Site) ViewUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "userID")

	user, err := s.Blog.Author(ctx, userID)
	if err != nil {
		s.renderFailure(w, r, err)
		return
	}
	if user == nil {
		s.notFound(w, "This profile")
		return
	}

	posts, err := s.Blog.PostsByAuthor(ctx, userID)
	if err != nil {
		s.renderFailure(w, r, err)
		return
	}

	// Visitors only see the public subset; the owner sees everything on
	// their own profile.
	viewer := s.Session.Current()
	shown := make([]recordstore.Post, 0, len(posts))
	for _, p := range posts {
		if p.IsPublic || (viewer != nil && viewer.ID == userID) {
			shown = append(shown, p)
		}
	}

	s.render(w, templates.ProfilePage(s.props(user.Name), *user,
		s.buildCards(shown, []recordstore.User{*user})))
}

func (s *Site) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	results, err := s.Blog.Search(r.Context(), query)
	if err != nil {
		s.renderFailure(w, r, err)
		return
	}

	var cards []templates.PostCard
	if len(results.Posts) > 0 {
		users, err := s.Blog.AllUsers(r.Context())
		if err != nil {
			s.renderFailure(w, r, err)
			return
		}
		cards = s.buildCards(results.Posts, users)
	}

	s.render(w, templates.SearchPage(s.props("Search"), query, cards, results.Users))
}

func (s *Site) About(w http.ResponseWriter, r *http.Request) {
	s.render(w, templates.AboutPage(s.props("About")))
}

func (s *Site) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		if s.Session.Current() != nil {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		s.render(w, templates.LoginPage(s.props("Login"), ""))
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := s.Session.Login(r.Context(), email, password)
	if err != nil {
		s.renderFailure(w, r, err)
		return
	}
	if user == nil {
		// Wrong credentials is a normal outcome, not an error.
		w.WriteHeader(http.StatusUnauthorized)
		s.render(w, templates.LoginPage(s.props("Login"), "Invalid email or password."))
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Site) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		if s.Session.Current() != nil {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		s.render(w, templates.RegisterPage(s.props("Register"), ""))
		return
	}

	profile := session.NewProfile{
		Name:      strings.TrimSpace(r.FormValue("name")),
		Email:     strings.TrimSpace(r.FormValue("email")),
		Password:  r.FormValue("password"),
		AvatarURL: strings.TrimSpace(r.FormValue("avatarUrl")),
	}
	if profile.Name == "" || profile.Email == "" || profile.Password == "" {
		w.WriteHeader(http.StatusBadRequest)
		s.render(w, templates.RegisterPage(s.props("Register"), "Name, email and password are required."))
		return
	}

	user, err := s.Session.Register(r.Context(), profile)
	if err != nil {
		s.renderFailure(w, r, err)
		return
	}
	if user == nil {
		w.WriteHeader(http.StatusConflict)
		s.render(w, templates.RegisterPage(s.props("Register"), "That email is already registered."))
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Site) Logout(w http.ResponseWriter, r *http.Request) {
	s.Session.Logout()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
