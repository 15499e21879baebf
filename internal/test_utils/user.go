package test_utils

import (
	"context"

	"github.com/meetcal/meetcal/pkg/user"
)

// TestUser is a student of cohort 2025, group A.
var TestUser = user.User{
	Id:          123,
	Uid:         "test-user-uid",
	Username:    "test_user",
	DisplayName: "Test User",
	Cohort:      "2025",
	Group:       "A",
	Settings: user.Settings{
		Timezone: "Asia/Jerusalem",
	},
}

// WithTestUser returns ctx carrying TestUser as the current user.
func WithTestUser(ctx context.Context) context.Context {
	return user.WithUser(ctx, TestUser)
}
