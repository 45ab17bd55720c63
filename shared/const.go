package shared

const (
	UserID   = "user_id"
	UserRole = "user_role"

	RoleStudent = "student"
	RoleParent  = "parent"
	RoleAdmin   = "admin"

	ContentTypeVideo    = "video"
	ContentTypeRichText = "rich_text"

	DefaultCompletionThreshold = 90.0
)
