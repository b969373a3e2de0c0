package cont

import "context"

type ctxKey string

const sessionKey ctxKey = "session"

func PutSession(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey, id)
}

// GetSession returns the viewer session id, empty when the request did not
// pass through the session middleware.
func GetSession(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey).(string)
	return id
}
