package zendesk

import (
	"context"
	"fmt"
)

type UserResp struct {
	User User `json:"user"`
}

type User struct {
	Id    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ConnectionTest fetches the authenticated user. Zendesk answers anonymous
// requests to /users/me with id 0 instead of an error, so that is checked too.
func (c *Client) ConnectionTest(ctx context.Context) error {
	url := fmt.Sprintf("%s/users/me.json", c.baseUrl)

	u := &UserResp{}
	if err := c.ApiRequest(ctx, "GET", url, nil, u); err != nil {
		return err
	}

	if u.User.Id == 0 {
		return fmt.Errorf("credentials were not accepted for %s", c.baseUrl)
	}

	return nil
}
