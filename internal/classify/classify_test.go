package classify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/support-kit/analytics-service/internal/domain"
	"github.com/support-kit/analytics-service/internal/zendesk"
)

func rawTicket(id int64, email, name, status, subject string, tags ...string) zendesk.RawTicket {
	var address *string
	if email != "" {
		address = &email
	}
	return zendesk.RawTicket{
		ID:        id,
		CreatedAt: time.Date(2018, 3, 14, 15, 9, 0, 0, time.UTC),
		UpdatedAt: time.Date(2018, 3, 15, 8, 0, 0, 0, time.UTC),
		Status:    status,
		Subject:   subject,
		Tags:      tags,
		Via: zendesk.Via{
			Channel: "email",
			Source:  zendesk.Source{From: zendesk.From{Name: name, Address: address}},
		},
	}
}

func TestTicketsProjectsEveryRawTicket(t *testing.T) {
	raw := []zendesk.RawTicket{
		rawTicket(1, "a@example.com", "Alice", "open", "Help", "happy"),
		rawTicket(2, "", "No Address", "new", "Hi"),
	}

	tickets := Tickets(raw)

	require.Len(t, tickets, 2)
	assert.Equal(t, int64(1), tickets[0].SourceID)
	assert.Equal(t, "a@example.com", tickets[0].Email)
	assert.Equal(t, "Alice", tickets[0].Name)
	assert.Equal(t, "email", tickets[0].Channel)
	assert.Equal(t, []string{"happy"}, tickets[0].Tags)
	assert.Equal(t, "", tickets[1].Email)
	assert.NotEqual(t, tickets[0].ID, tickets[1].ID)
}

func TestClientsExcludesInternalAndInvalidEmails(t *testing.T) {
	raw := []zendesk.RawTicket{
		rawTicket(1, "x@pupscan.com", "Staff", "open", "internal"),
		rawTicket(2, "bot@indiegogo.com", "Platform", "open", "campaign"),
		rawTicket(3, "team@kisskissbankbank.com", "Platform", "open", "campaign"),
		rawTicket(4, "", "Anonymous", "open", "no address"),
		rawTicket(5, "not-an-email", "Bad", "open", "no at sign"),
		rawTicket(6, "noreply@shop.example", "Robot", "open", "automated"),
		rawTicket(7, "no-reply@shop.example", "Robot", "open", "automated"),
		rawTicket(8, "gone@example.com", "Gone", "deleted", "removed"),
	}

	assert.Empty(t, Clients(raw))
}

func TestClientsDeduplicatesByEmail(t *testing.T) {
	raw := []zendesk.RawTicket{
		rawTicket(1, "alice@example.com", "alice", "open", "first subject"),
		rawTicket(2, "alice@example.com", "alice", "solved", "second subject"),
		rawTicket(3, "bob@example.com", "bob", "open", "other"),
	}

	clients := Clients(raw)

	require.Len(t, clients, 2)
	assert.Equal(t, "alice@example.com", clients[0].Email)
	assert.Equal(t, "open", clients[0].Status)
	assert.Equal(t, "bob@example.com", clients[1].Email)
}

func TestClientsNormalizesNames(t *testing.T) {
	raw := []zendesk.RawTicket{
		rawTicket(1, "q@example.com", `he said \"hi\"`, "open", "greeting"),
	}

	clients := Clients(raw)

	require.Len(t, clients, 1)
	assert.Equal(t, "He said hi", clients[0].Name)
}

func TestCompaniesRequireResellerTag(t *testing.T) {
	raw := []zendesk.RawTicket{
		rawTicket(1, "shop@example.com", "Shop", "open", "stock", "Reseller"),
		rawTicket(2, "typo@example.com", "Typo", "open", "stock", "resseler-eu"),
		rawTicket(3, "fr@example.fr", "Boutique", "open", "stock", "Revendeur"),
		rawTicket(4, "plain@example.com", "Plain", "open", "question", "happy"),
		rawTicket(5, "", "NoMail", "open", "question", "distributor"),
	}

	companies := Companies(raw)

	require.Len(t, companies, 3)
	emails := []string{companies[0].Email, companies[1].Email, companies[2].Email}
	assert.Equal(t, []string{"shop@example.com", "typo@example.com", "fr@example.fr"}, emails)
}

func TestCompaniesDeduplicateByEmail(t *testing.T) {
	raw := []zendesk.RawTicket{
		rawTicket(1, "shop@example.com", "shop", "open", "first", "distributor"),
		rawTicket(2, "shop@example.com", "shop intl", "open", "second", "distributor"),
	}

	companies := Companies(raw)

	require.Len(t, companies, 1)
	// Last qualifying ticket wins the name slot.
	assert.Equal(t, "Shop intl", companies[0].Name)
}

func TestCompanyCountryInference(t *testing.T) {
	first := rawTicket(1, "shop@example.com", "Shop", "open", "hello", "reseller")
	first.Description = "We distribute your product in FRANCE since 2017."
	second := rawTicket(2, "shop@example.com", "Shop", "open", "again", "reseller")
	second.Description = "Also expanding to Germany next year."

	companies := Companies([]zendesk.RawTicket{first, second})

	require.Len(t, companies, 1)
	// France precedes Germany in the reference list, regardless of which
	// description mentions its country first.
	assert.Equal(t, "France", companies[0].Country)
}

func TestCompanyCountryListOrderWinsOverTextOrder(t *testing.T) {
	ticket := rawTicket(1, "shop@example.com", "Shop", "open", "hello", "reseller")
	ticket.Description = "Shipping from Germany and also France."

	companies := Companies([]zendesk.RawTicket{ticket})

	require.Len(t, companies, 1)
	assert.Equal(t, "France", companies[0].Country)
}

func TestCompanyCountryHyphenation(t *testing.T) {
	ticket := rawTicket(1, "shop@example.com", "Shop", "open", "hello", "reseller")
	ticket.Description = "Our warehouse is in the United States."

	companies := Companies([]zendesk.RawTicket{ticket})

	require.Len(t, companies, 1)
	assert.Equal(t, "United-States", companies[0].Country)
}

func TestCompanyWithoutCountryMention(t *testing.T) {
	ticket := rawTicket(1, "shop@example.com", "Shop", "open", "hello", "reseller")
	ticket.Description = "Nothing geographic here."

	companies := Companies([]zendesk.RawTicket{ticket})

	require.Len(t, companies, 1)
	assert.Empty(t, companies[0].Country)
}

func TestActivitySubjectClassification(t *testing.T) {
	raw := []zendesk.RawTicket{
		rawTicket(1, "a@example.com", "A", "open", "[Indiegogo] New contribution #123"),
		rawTicket(2, "a@example.com", "A", "open", "[Indiegogo] Order Refunded"),
		rawTicket(3, "a@example.com", "A", "open", "[Indiegogo] New Message from backer"),
		rawTicket(4, "a@example.com", "A", "open", "[Indiegogo] Campaign update"),
		rawTicket(5, "a@example.com", "A", "open", "Need help with my order"),
	}
	clients := Clients(raw)
	require.Len(t, clients, 1)

	activities := Activities(raw, clients)

	require.Len(t, activities, 5)
	assert.Equal(t, domain.ActivityTypePurchase, activities[0].Type)
	assert.Equal(t, "Indiegogo", activities[0].Description)
	assert.Equal(t, domain.ActivityTypeRefund, activities[1].Type)
	assert.Equal(t, domain.ActivityTypeMessage, activities[2].Type)
	assert.Equal(t, domain.ActivityTypeOther, activities[3].Type)
	assert.Equal(t, "Indiegogo", activities[3].Description)
	assert.Equal(t, domain.ActivityTypeMessage, activities[4].Type)
	assert.Equal(t, "", activities[4].Description)

	for _, a := range activities {
		assert.Equal(t, clients[0].ID, a.ClientID)
	}
}

func TestActivityDateFormat(t *testing.T) {
	raw := []zendesk.RawTicket{
		rawTicket(1, "a@example.com", "A", "open", "anything"),
	}
	activities := Activities(raw, Clients(raw))

	require.Len(t, activities, 1)
	assert.Equal(t, "14/03 03:09", activities[0].Date)
}

func TestActivitySkippedWithoutMatchingClient(t *testing.T) {
	// pupscan.com senders never become clients, so their tickets emit no
	// activity either.
	raw := []zendesk.RawTicket{
		rawTicket(1, "x@pupscan.com", "Staff", "open", "[Indiegogo] New contribution"),
	}

	assert.Empty(t, Activities(raw, Clients(raw)))
}

func TestBatchTiesActivitiesToSameBatchClients(t *testing.T) {
	raw := []zendesk.RawTicket{
		rawTicket(1, "a@example.com", "A", "open", "first"),
		rawTicket(2, "b@example.com", "B", "open", "second", "reseller"),
		rawTicket(3, "x@pupscan.com", "Staff", "open", "internal"),
	}

	result := Batch(raw)

	assert.Len(t, result.Tickets, 3)
	assert.Len(t, result.Clients, 2)
	assert.Len(t, result.Companies, 1)
	assert.Len(t, result.Activities, 2)
}
