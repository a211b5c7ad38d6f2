package test_utils

import (
	"context"

	"github.com/centsible/centsible/pkg/user"
)

// WithTestUser returns a context carrying a fixed test user, matching the
// seed user created by the test database init script.
func WithTestUser(ctx context.Context) context.Context {
	return user.WithUser(ctx, user.User{
		Id:          1,
		Uid:         "test-user-uid",
		Username:    "test_user",
		DisplayName: "Test User",
		Settings: user.Settings{
			DisplayCurrency: "USD",
			Locale:          "en-US",
			Timezone:        "UTC",
		},
	})
}
