package contextkeys

// Custom key type to avoid collisions in context values.
type contextKey string

// DBContextKey is the key under which *gorm.DB travels in the request context.
const DBContextKey = contextKey("db")
