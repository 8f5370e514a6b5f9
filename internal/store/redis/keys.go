package redis

const (
	// KeyPrefixScholarship is the prefix for scholarship keys
	KeyPrefixScholarship = "scholarpath:scholarship:"
	// KeyAllScholarships is the key for the set of all scholarship IDs
	KeyAllScholarships = "scholarpath:scholarships:all"

	// KeyPrefixUniversity is the prefix for university keys
	KeyPrefixUniversity = "scholarpath:university:"
	// KeyAllUniversities is the key for the set of all university IDs
	KeyAllUniversities = "scholarpath:universities:all"

	// KeyPrefixBookmark is the prefix for bookmark keys
	KeyPrefixBookmark = "scholarpath:bookmark:"
	// KeyAllBookmarks is the key for the set of all bookmark IDs
	KeyAllBookmarks = "scholarpath:bookmarks:all"

	// KeyPrefixUser is the prefix for user keys
	KeyPrefixUser = "scholarpath:user:"
	// KeyAllUsers is the key for the set of all user IDs
	KeyAllUsers = "scholarpath:users:all"

	// KeyPrefixSummary is the prefix for cached summaries
	KeyPrefixSummary = "scholarpath:summary:"
)

// ScholarshipKey returns the Redis key for a scholarship by ID
func ScholarshipKey(id string) string {
	return KeyPrefixScholarship + id
}

// UniversityKey returns the Redis key for a university by ID
func UniversityKey(id string) string {
	return KeyPrefixUniversity + id
}

// BookmarkKey returns the Redis key for a bookmark by ID
func BookmarkKey(id string) string {
	return KeyPrefixBookmark + id
}

// UserKey returns the Redis key for a user by ID
func UserKey(id string) string {
	return KeyPrefixUser + id
}

// SummaryKey returns the Redis key for a cached entity summary
func SummaryKey(kind, id string) string {
	return KeyPrefixSummary + kind + ":" + id
}
