package zendesk

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// ticketIncludes are the sideloads requested with a ticket lookup.
var ticketIncludes = []string{
	"brands",
	"permissions",
	"users",
	"groups",
	"organizations",
	"sharing_agreements",
	"incident_counts",
	"tde_workspace",
	"slas",
}

type TicketResp struct {
	Ticket Ticket `json:"ticket"`
}

type Ticket struct {
	Url            string              `json:"url"`
	Id             int64               `json:"id"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	Subject        string              `json:"subject"`
	Status         string              `json:"status"`
	RequesterId    int64               `json:"requester_id"`
	AssigneeId     int64               `json:"assignee_id"`
	OrganizationId int64               `json:"organization_id"`
	GroupId        int64               `json:"group_id"`
	DueAt          *time.Time          `json:"due_at"`
	Tags           []string            `json:"tags"`
	Fields         []TicketCustomField `json:"fields"`
	CustomFields   []TicketCustomField `json:"custom_fields"`
}

// Field looks a custom field up by id, checking fields before custom_fields.
func (t *Ticket) Field(id int64) (FieldValue, bool) {
	for _, f := range t.Fields {
		if f.Id == id {
			return f.Value, true
		}
	}

	for _, f := range t.CustomFields {
		if f.Id == id {
			return f.Value, true
		}
	}

	return FieldValue{}, false
}

func (c *Client) GetTicketInfo(ctx context.Context, ticketId int64) (*Ticket, error) {
	url := fmt.Sprintf("%s/tickets/%d?include=%s", c.baseUrl, ticketId, strings.Join(ticketIncludes, "%2C"))
	t := &TicketResp{}

	if err := c.ApiRequest(ctx, "GET", url, nil, t); err != nil {
		return nil, fmt.Errorf("getting ticket info: %w", err)
	}

	return &t.Ticket, nil
}
