package httpapi

import "context"

type contextKey string

const accountContextKey contextKey = "account_id"

func withAccountID(ctx context.Context, accountID string) context.Context {
	return context.WithValue(ctx, accountContextKey, accountID)
}

func accountIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(accountContextKey).(string)
	return id, ok && id != ""
}
