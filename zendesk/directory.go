package zendesk

import (
	"context"
	"net/url"
	"strconv"
)

// ListUsers retrieves all users visible to the account, page by page.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	err := c.paginate(ctx, "users.json", func(params url.Values) (int, error) {
		var resp usersResponse
		if err := c.get(ctx, "users.json", params, &resp); err != nil {
			return 0, err
		}
		users = append(users, resp.Users...)
		return len(resp.Users), nil
	})
	return users, err
}

// ListOrganizations retrieves all organizations visible to the account.
func (c *Client) ListOrganizations(ctx context.Context) ([]Organization, error) {
	var orgs []Organization
	err := c.paginate(ctx, "organizations.json", func(params url.Values) (int, error) {
		var resp organizationsResponse
		if err := c.get(ctx, "organizations.json", params, &resp); err != nil {
			return 0, err
		}
		orgs = append(orgs, resp.Organizations...)
		return len(resp.Organizations), nil
	})
	return orgs, err
}

// paginate walks a paged endpoint until a page comes back short or empty.
func (c *Client) paginate(ctx context.Context, endpoint string, fetch func(params url.Values) (int, error)) error {
	pageSize := c.cfg.pageSize()
	for page := 1; ; page++ {
		params := url.Values{
			"page":     {strconv.Itoa(page)},
			"per_page": {strconv.Itoa(pageSize)},
		}

		count, err := fetch(params)
		if err != nil {
			return err
		}
		if count < pageSize {
			return nil
		}
	}
}
