package site

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"inkwell/blog"
	"inkwell/recordstore"
	"inkwell/session"
	"inkwell/templates"
)

func (s *Site) MyPosts(w http.ResponseWriter, r *http.Request) {
	user := s.Session.Current()

	posts, err := s.Blog.PostsByAuthor(r.Context(), user.ID)
	if err != nil {
		s.renderFailure(w, r, err)
		return
	}
	s.render(w, templates.MyPostsPage(s.props("My posts"), posts))
}

func draftFromForm(r *http.Request) blog.Draft {
	return blog.Draft{
		Title:    strings.TrimSpace(r.FormValue("title")),
		Body:     r.FormValue("body"),
		IsPublic: r.FormValue("visibility") != "private",
	}
}

// imageFilesFromForm opens every file picked in the "images" field. The
// returned closer must run after the upload fan-out finishes.
func imageFilesFromForm(r *http.Request) ([]blog.ImageFile, func(), error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return nil, func() {}, err
	}

	var images []blog.ImageFile
	var closers []func() error
	for _, header := range r.MultipartForm.File["images"] {
		f, err := header.Open()
		if err != nil {
			for _, c := range closers {
				c()
			}
			return nil, func() {}, err
		}
		closers = append(closers, f.Close)
		images = append(images, blog.ImageFile{Name: header.Filename, Data: f})
	}
	return images, func() {
		for _, c := range closers {
			c()
		}
	}, nil
}

func (s *Site) CreatePost(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		s.render(w, templates.PostFormPage(s.props("New post"), nil, "", ""))
	case "POST":
		images, closeAll, err := imageFilesFromForm(r)
		if err != nil {
			http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer closeAll()

		draft := draftFromForm(r)
		if draft.Title == "" {
			w.WriteHeader(http.StatusBadRequest)
			s.render(w, templates.PostFormPage(s.props("New post"), nil, draft.Body, "A title is required."))
			return
		}

		if _, err := s.Blog.CreatePost(r.Context(), draft, images); err != nil {
			s.renderFailure(w, r, err)
			return
		}
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// ownPost loads the post and enforces that the signed-in user wrote it.
func (s *Site) ownPost(w http.ResponseWriter, r *http.Request) *recordstore.Post {
	postID := chi.URLParam(r, "postID")

	post, err := s.Blog.PostByID(r.Context(), postID)
	if err != nil {
		s.renderFailure(w, r, err)
		return nil
	}
	if post == nil {
		s.notFound(w, "This post")
		return nil
	}
	if user := s.Session.Current(); user == nil || post.AuthorID != user.ID {
		http.Error(w, "You don't own this post", http.StatusForbidden)
		return nil
	}
	return post
}

func (s *Site) EditPost(w http.ResponseWriter, r *http.Request) {
	post := s.ownPost(w, r)
	if post == nil {
		return
	}

	switch r.Method {
	case "GET":
		body := recordstore.DecodeBodyOrRaw(post.Body)
		s.render(w, templates.PostFormPage(s.props("Edit post"), post, body, ""))

	case "POST":
		newImages, closeAll, err := imageFilesFromForm(r)
		if err != nil {
			http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer closeAll()

		kept := r.MultipartForm.Value["keepImage"]
		draft := draftFromForm(r)

		if _, err := s.Blog.EditPost(r.Context(), post.ID, draft, kept, newImages); err != nil {
			s.renderFailure(w, r, err)
			return
		}
		http.Redirect(w, r, "/post/"+post.ID, http.StatusSeeOther)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Site) DeletePost(w http.ResponseWriter, r *http.Request) {
	post := s.ownPost(w, r)
	if post == nil {
		return
	}

	if err := s.Blog.DeletePost(r.Context(), post.ID); err != nil {
		s.renderFailure(w, r, err)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Site) Favorites(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := s.Session.Current()

	favs, err := s.Blog.Favorites(ctx, user)
	if err != nil {
		s.renderFailure(w, r, err)
		return
	}
	users, err := s.Blog.AllUsers(ctx)
	if err != nil {
		s.renderFailure(w, r, err)
		return
	}

	s.render(w, templates.FavoritesPage(s.props("Favorites"), s.buildCards(favs, users)))
}

func (s *Site) Settings(w http.ResponseWriter, r *http.Request) {
	user := s.Session.Current()

	switch r.Method {
	case "GET":
		s.render(w, templates.SettingsPage(s.props("Settings"), *user, ""))

	case "POST":
		upd := session.ProfileUpdate{}
		if v := strings.TrimSpace(r.FormValue("name")); v != "" {
			upd.Name = &v
		}
		avatar := strings.TrimSpace(r.FormValue("avatarUrl"))
		upd.AvatarURL = &avatar
		cover := strings.TrimSpace(r.FormValue("coverUrl"))
		upd.CoverURL = &cover
		bio := r.FormValue("bio")
		upd.Bio = &bio
		theme := strings.TrimSpace(r.FormValue("theme"))
		upd.Theme = &theme
		if v := r.FormValue("password"); v != "" {
			upd.Password = &v
		}

		updated, err := s.Session.Update(r.Context(), upd)
		if err != nil {
			s.renderFailure(w, r, err)
			return
		}
		s.render(w, templates.SettingsPage(s.props("Settings"), *updated, "Saved."))

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
