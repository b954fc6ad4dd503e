package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeadTemplates(t *testing.T) {
	lead := LeadNotification{
		Name:    "Ana <script>",
		Email:   "ana@acme.io",
		Company: "Acme",
		Message: "Hi\nwe need a site",
	}

	assert.Equal(t, "New lead: Ana <script> (Acme)", leadSubject(lead))
	assert.Equal(t, "Name: Ana <script>\nEmail: ana@acme.io\nCompany: Acme\n\nHi\nwe need a site\n", leadText(lead))

	body := leadHTML(lead)
	assert.Contains(t, body, "Ana &lt;script&gt;")
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "Hi<br>we need a site")
	assert.NotContains(t, body, "Phone")
}

func TestLeadSubjectWithoutCompany(t *testing.T) {
	assert.Equal(t, "New lead: Bo", leadSubject(LeadNotification{Name: "Bo"}))
}
