// Package classify holds the pure transformation rules that turn raw export
// tickets into the four materialized view row sets. No I/O happens here; a
// malformed raw field makes a record ineligible instead of raising an error.
package classify

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/support-kit/analytics-service/internal/domain"
	"github.com/support-kit/analytics-service/internal/zendesk"
	"github.com/support-kit/analytics-service/pkg/util"
)

// activityDateLayout renders dd/MM hh:mm on a 12-hour clock, matching the
// dashboard's display format.
const activityDateLayout = "02/01 03:04"

// excludedClientDomains lists internal and crowdfunding-platform senders
// that never qualify as clients.
var excludedClientDomains = []string{
	"pupscan.com",
	"indiegogo.com",
	"kisskissbankbank.com",
}

// resellerKeywords mark a sender as a distributor/reseller company. Both
// reseller spellings are live upstream; the French terms come from the
// original tagging workflow.
var resellerKeywords = []string{
	"distributor",
	"resseler",
	"reseller",
	"distributeur",
	"revendeur",
}

// Result bundles the four candidate view sets produced from one raw batch.
type Result struct {
	Tickets    []domain.Ticket
	Clients    []domain.Client
	Companies  []domain.Company
	Activities []domain.Activity
}

// Batch runs the full classification over a raw ticket batch. Activities are
// derived last because they only exist for senders that produced a client in
// the same batch.
func Batch(raw []zendesk.RawTicket) Result {
	clients := Clients(raw)
	return Result{
		Tickets:    Tickets(raw),
		Clients:    clients,
		Companies:  Companies(raw),
		Activities: Activities(raw, clients),
	}
}

// Tickets projects every raw ticket into exactly one view row.
func Tickets(raw []zendesk.RawTicket) []domain.Ticket {
	tickets := make([]domain.Ticket, 0, len(raw))
	for _, rt := range raw {
		tickets = append(tickets, domain.Ticket{
			ID:          uuid.NewString(),
			SourceID:    rt.ID,
			CreatedDate: rt.CreatedAt,
			UpdatedDate: rt.UpdatedAt,
			Status:      rt.Status,
			Channel:     rt.Via.Channel,
			Name:        rt.Via.Source.From.Name,
			Email:       rt.Via.Source.From.Email(),
			Subject:     rt.Subject,
			Message:     rt.Description,
			Tags:        rt.Tags,
		})
	}
	return tickets
}

// Clients produces at most one client per distinct qualifying sender email,
// in first-seen order.
func Clients(raw []zendesk.RawTicket) []domain.Client {
	var clients []domain.Client
	seen := make(map[string]struct{})
	for _, rt := range raw {
		if !clientEligible(rt) {
			continue
		}
		email := rt.Via.Source.From.Email()
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}
		clients = append(clients, domain.Client{
			ID:     uuid.NewString(),
			Name:   util.CleanName(rt.Via.Source.From.Name),
			Email:  email,
			Status: rt.Status,
			Tags:   rt.Tags,
		})
	}
	return clients
}

func clientEligible(rt zendesk.RawTicket) bool {
	email := rt.Via.Source.From.Email()
	switch {
	case strings.TrimSpace(email) == "":
		return false
	case !strings.Contains(email, "@"):
		return false
	case strings.Contains(email, "noreply"), strings.Contains(email, "no-reply"):
		return false
	case strings.Contains(rt.Status, "deleted"):
		return false
	}
	for _, excluded := range excludedClientDomains {
		if strings.Contains(email, excluded) {
			return false
		}
	}
	return true
}

// Companies produces one company per distinct reseller sender email, with
// the country inferred from every description that email wrote. Last ticket
// wins the name slot, which is fine since only name and email differ across
// duplicates.
func Companies(raw []zendesk.RawTicket) []domain.Company {
	order := make([]string, 0)
	byEmail := make(map[string]zendesk.RawTicket)
	descriptions := make(map[string][]string)

	for _, rt := range raw {
		email := rt.Via.Source.From.Email()
		if email == "" {
			continue
		}
		descriptions[email] = append(descriptions[email], rt.Description)
		if !companyEligible(rt) {
			continue
		}
		if _, ok := byEmail[email]; !ok {
			order = append(order, email)
		}
		byEmail[email] = rt
	}

	companies := make([]domain.Company, 0, len(byEmail))
	for _, email := range order {
		rt := byEmail[email]
		companies = append(companies, domain.Company{
			ID:      uuid.NewString(),
			Name:    util.CleanName(rt.Via.Source.From.Name),
			Email:   email,
			Country: inferCountry(strings.Join(descriptions[email], " ")),
		})
	}
	return companies
}

func companyEligible(rt zendesk.RawTicket) bool {
	email := rt.Via.Source.From.Email()
	if strings.TrimSpace(email) == "" || !strings.Contains(email, "@") {
		return false
	}
	for _, tag := range rt.Tags {
		lowered := strings.ToLower(tag)
		for _, keyword := range resellerKeywords {
			if strings.Contains(lowered, keyword) {
				return true
			}
		}
	}
	return false
}

// Activities emits exactly one activity for every raw ticket whose sender
// matches a client produced in the same batch. Tickets without a matching
// client are dropped silently.
func Activities(raw []zendesk.RawTicket, clients []domain.Client) []domain.Activity {
	clientIDByEmail := make(map[string]string, len(clients))
	for _, client := range clients {
		clientIDByEmail[client.Email] = client.ID
	}

	var activities []domain.Activity
	for _, rt := range raw {
		email := rt.Via.Source.From.Email()
		if !strings.Contains(email, "@") {
			continue
		}
		clientID, ok := clientIDByEmail[email]
		if !ok {
			continue
		}
		activities = append(activities, classifyActivity(clientID, rt.ID, rt.Subject, rt.CreatedAt))
	}
	return activities
}

func classifyActivity(clientID string, sourceID int64, subject string, created time.Time) domain.Activity {
	activity := domain.Activity{
		ID:       uuid.NewString(),
		ClientID: clientID,
		Date:     created.Format(activityDateLayout),
		SourceID: sourceID,
	}
	switch {
	case strings.Contains(subject, "[Indiegogo] New contribution"):
		activity.Type = domain.ActivityTypePurchase
		activity.Description = "Indiegogo"
	case strings.Contains(subject, "[Indiegogo] Order Refunded"):
		activity.Type = domain.ActivityTypeRefund
		activity.Description = "Indiegogo"
	case strings.Contains(subject, "[Indiegogo] New Message"):
		activity.Type = domain.ActivityTypeMessage
		activity.Description = "Indiegogo"
	case strings.Contains(subject, "[Indiegogo]"):
		activity.Type = domain.ActivityTypeOther
		activity.Description = "Indiegogo"
	default:
		activity.Type = domain.ActivityTypeMessage
	}
	return activity
}
