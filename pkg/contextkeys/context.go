package contextkeys

// Custom key type to avoid collisions with other packages.
type contextKey string

// DBContextKey is the key under which the *gorm.DB handle (connection pool
// or, in tests, an open transaction) is stored for the current request.
const DBContextKey = contextKey("db")
