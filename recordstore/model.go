package recordstore

// The record store is a dumb collection-oriented JSON service. These structs
// mirror its documents field for field; it performs no validation of its own,
// so every invariant (like-set uniqueness, encoded bodies, immutable
// authorship) is enforced by the code that writes them.

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	AvatarURL string   `json:"avatarUrl"`
	Role      string   `json:"role"`
	Bio       string   `json:"bio,omitempty"`
	CoverURL  string   `json:"coverUrl,omitempty"`
	Theme     string   `json:"theme,omitempty"`
	CreatedAt string   `json:"createdAt,omitempty"`
	Favorites []string `json:"favorites"`
}

func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

// HasFavorite reports whether postID is in the user's favorites list.
func (u *User) HasFavorite(postID string) bool {
	if u == nil {
		return false
	}
	for _, id := range u.Favorites {
		if id == postID {
			return true
		}
	}
	return false
}

// Post.Body is percent-encoded at rest. Use DecodeBodyOrRaw when displaying
// and EncodeBody before any create or replace.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	AuthorID  string    `json:"authorId"`
	IsPublic  bool      `json:"isPublic"`
	Images    []string  `json:"images"`
	Likes     []string  `json:"likes"`
	Comments  []Comment `json:"comments,omitempty"`
	CreatedAt string    `json:"createdAt,omitempty"`
	UpdatedAt string    `json:"updatedAt,omitempty"`
}

// LikedBy reports whether userID is in the post's like-set.
func (p *Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// Comments are embedded in their parent post; there is no comments
// collection. Mutating one means replacing the whole post.
type Comment struct {
	ID        string `json:"id"`
	PostID    string `json:"postId"`
	UserID    string `json:"userId"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}
