package site

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"inkwell/recordstore"
	"inkwell/session"
	"inkwell/templates"
)

// Admin console handlers. The AdminOnlyMiddleware has already verified the
// acting identity's role by the time any of these run; the moderation
// operations themselves trust the caller. Every destructive action gets a
// GET confirmation page first and only fires on the confirmed POST.

func (s *Site) AdminOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := s.Blog.AllUsers(ctx)
	if err != nil {
		s.renderFailure(w, r, err)
		return
	}
	posts, err := s.Blog.AllPosts(ctx)
	if err != nil {
		s.renderFailure(w, r, err)
		return
	}
	public := 0
	for _, p := range posts {
		if p.IsPublic {
			public++
		}
	}

	s.render(w, templates.AdminOverviewPage(s.props("Admin"), len(users), len(posts), public))
}

func (s *Site) AdminPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	posts, err := s.Blog.AllPosts(ctx)
	if err != nil {
		s.renderFailure(w, r, err)
		return
	}
	users, err := s.Blog.AllUsers(ctx)
	if err != nil {
		s.renderFailure(w, r, err)
		return
	}
	byID := make(map[string]recordstore.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	s.render(w, templates.AdminPostsPage(s.props("Admin · Posts"), posts, byID))
}

func (s *Site) AdminEditPost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")

	post, err := s.Blog.PostByID(r.Context(), postID)
	if err != nil {
		s.renderFailure(w, r, err)
		return
	}
	if post == nil {
		s.notFound(w, "This post")
		return
	}

	switch r.Method {
	case "GET":
		body := recordstore.DecodeBodyOrRaw(post.Body)
		s.render(w, templates.AdminPostEditPage(s.props("Admin · Edit post"), *post, body))

	case "POST":
		if _, err := s.Blog.ModerateReplacePost(r.Context(), postID, draftFromForm(r)); err != nil {
			s.renderFailure(w, r, err)
			return
		}
		http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Site) AdminDeletePost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")

	switch r.Method {
	case "GET":
		post, err := s.Blog.PostByID(r.Context(), postID)
		if err != nil {
			s.renderFailure(w, r, err)
			return
		}
		if post == nil {
			s.notFound(w, "This post")
			return
		}
		s.render(w, templates.ConfirmPage(s.props("Confirm"),
			"Delete post \""+post.Title+"\"?",
			"This permanently removes the post, its comments and its likes.",
			"/admin/posts/"+postID+"/delete",
			"/admin/posts"))

	case "POST":
		if err := s.Blog.ModerateDeletePost(r.Context(), postID); err != nil {
			s.renderFailure(w, r, err)
			return
		}
		http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Site) AdminUsers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		s.renderAdminUsers(w, r, "")

	case "POST":
		profile := session.NewProfile{
			Name:      strings.TrimSpace(r.FormValue("name")),
			Email:     strings.TrimSpace(r.FormValue("email")),
			Password:  r.FormValue("password"),
			AvatarURL: strings.TrimSpace(r.FormValue("avatarUrl")),
		}
		role := r.FormValue("role")

		created, err := s.Blog.ModerateCreateUser(r.Context(), profile, role)
		if err != nil {
			s.renderFailure(w, r, err)
			return
		}
		if created == nil {
			s.renderAdminUsers(w, r, "That email is already registered.")
			return
		}
		http.Redirect(w, r, "/admin/users", http.StatusSeeOther)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Site) renderAdminUsers(w http.ResponseWriter, r *http.Request, message string) {
	users, err := s.Blog.AllUsers(r.Context())
	if err != nil {
		s.renderFailure(w, r, err)
		return
	}
	s.render(w, templates.AdminUsersPage(s.props("Admin · Users"), users, message))
}

func (s *Site) AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	switch r.Method {
	case "GET":
		user, err := s.Blog.Author(r.Context(), userID)
		if err != nil {
			s.renderFailure(w, r, err)
			return
		}
		if user == nil {
			s.notFound(w, "This account")
			return
		}
		s.render(w, templates.ConfirmPage(s.props("Confirm"),
			"Delete account "+user.Name+"?",
			"Their posts stay behind without an author. This cannot be undone.",
			"/admin/users/"+userID+"/delete",
			"/admin/users"))

	case "POST":
		if err := s.Blog.ModerateDeleteUser(r.Context(), userID); err != nil {
			s.renderFailure(w, r, err)
			return
		}
		http.Redirect(w, r, "/admin/users", http.StatusSeeOther)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Site) AdminSetRole(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	switch r.Method {
	case "GET":
		user, err := s.Blog.Author(r.Context(), userID)
		if err != nil {
			s.renderFailure(w, r, err)
			return
		}
		if user == nil {
			s.notFound(w, "This account")
			return
		}
		s.render(w, templates.RolePickerPage(s.props("Confirm"), *user))

	case "POST":
		role := r.URL.Query().Get("role")
		if role != recordstore.RoleUser && role != recordstore.RoleAdmin {
			http.Error(w, "Unknown role", http.StatusBadRequest)
			return
		}
		if _, err := s.Blog.ModerateSetRole(r.Context(), userID, role); err != nil {
			s.renderFailure(w, r, err)
			return
		}
		http.Redirect(w, r, "/admin/users", http.StatusSeeOther)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
