package constants

const (
	APP_NAME = "Inkwell"

	// Upper bound on a post body after percent-encoding. The record store
	// starts rejecting documents somewhere above this.
	MAX_POST_LENGTH = 50000

	MAX_POSTS_TO_SHOW = 2000

	// Name of the multipart field the image host expects.
	IMAGE_UPLOAD_FIELD = "image"
)
